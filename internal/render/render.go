// Package render writes subnet results as styled text. Formatting options
// are explicit configuration; computed values are printed verbatim and
// never recomputed here.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/subnetear/subnetear/internal/ipv4"
	"github.com/subnetear/subnetear/internal/subnet"
)

// Config controls presentation only.
type Config struct {
	// Color toggles ANSI styling.
	Color bool
	// Limit caps how many subnets List prints, 0 meaning no cap. The
	// underlying sequence is never truncated, only the display.
	Limit int
}

// Printer renders engine output to a writer.
type Printer struct {
	cfg  Config
	head func(a ...interface{}) string
	ok   func(a ...interface{}) string
	warn func(a ...interface{}) string
	fail func(a ...interface{}) string
	dim  func(a ...interface{}) string
}

func style(enabled bool, attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// New initializes a Printer with the provided configuration.
func New(cfg Config) *Printer {
	return &Printer{
		cfg:  cfg,
		head: style(cfg.Color, color.FgCyan, color.Bold),
		ok:   style(cfg.Color, color.FgGreen, color.Bold),
		warn: style(cfg.Color, color.FgYellow, color.Bold),
		fail: style(cfg.Color, color.FgRed, color.Bold),
		dim:  style(cfg.Color, color.Faint),
	}
}

// Headline prints an underlined section title.
func (p *Printer) Headline(w io.Writer, text string) {
	n := len(text)
	if n < 20 {
		n = 20
	}
	fmt.Fprintf(w, "\n%s\n%s\n", p.head(text), p.dim(strings.Repeat("-", n)))
}

// Success prints a green confirmation line.
func (p *Printer) Success(w io.Writer, text string) {
	fmt.Fprintln(w, p.ok(text))
}

// Warn prints a yellow notice line.
func (p *Printer) Warn(w io.Writer, text string) {
	fmt.Fprintln(w, p.warn(text))
}

// Error prints a red error line.
func (p *Printer) Error(w io.Writer, text string) {
	fmt.Fprintln(w, p.fail(text))
}

// Summary prints the derived parameters shared by every child of a split:
// base network, new mask and wildcard, block size and magic number.
func (p *Printer) Summary(w io.Writer, base ipv4.Network, s subnet.Split) {
	mask := ipv4.MaskFromPrefix(s.NewPrefix)
	magic, octet, maskOctet := subnet.Magic(s.NewPrefix)
	fmt.Fprintf(w, "Base network : %s\n", base)
	fmt.Fprintf(w, "New mask     : %s  (/%d)\n", mask, s.NewPrefix)
	fmt.Fprintf(w, "Wildcard     : %s\n", ipv4.Wildcard(mask))
	fmt.Fprintf(w, "Block size   : %d addresses per subnet\n", uint64(1)<<uint(32-s.NewPrefix))
	fmt.Fprintf(w, "Magic number : %d (octet %d, mask value %d)\n", magic, octet, maskOctet)
}

// List prints numbered per-subnet blocks, truncating the display at the
// configured limit and noting how much was cut.
func (p *Printer) List(w io.Writer, infos []subnet.Descriptor) {
	show := infos
	if p.cfg.Limit > 0 && len(infos) > p.cfg.Limit {
		show = infos[:p.cfg.Limit]
	}
	for i, d := range show {
		fmt.Fprintf(w, "%s\n", p.head(fmt.Sprintf("%2d. %s", i+1, d.Subnet)))
		fmt.Fprintf(w, "    Network   : %s\n", d.Network)
		fmt.Fprintf(w, "    Broadcast : %s\n", d.Broadcast)
		fmt.Fprintf(w, "    Hostrange : %s - %s\n", d.FirstHost, d.LastHost)
		fmt.Fprintf(w, "    Hosts     : %d\n", d.UsableHosts)
		fmt.Fprintf(w, "    Mask      : %s   Wildcard: %s\n", d.Netmask, d.Wildcard)
		fmt.Fprintf(w, "    Magic     : %d (octet %d)\n\n", d.MagicNumber, d.InterestingOctet)
	}
	if len(show) < len(infos) {
		p.Warn(w, fmt.Sprintf("(display truncated: %d of %d subnets, export holds all)", len(show), len(infos)))
	}
}

// Detail prints the full analysis block for a single subnet.
func (p *Printer) Detail(w io.Writer, d subnet.Descriptor) {
	fmt.Fprintf(w, "%s\n", p.head(d.Subnet))
	fmt.Fprintf(w, "Network   : %s\n", d.Network)
	fmt.Fprintf(w, "Broadcast : %s\n", d.Broadcast)
	fmt.Fprintf(w, "Hostrange : %s - %s\n", d.FirstHost, d.LastHost)
	fmt.Fprintf(w, "Hosts     : %d\n", d.UsableHosts)
	fmt.Fprintf(w, "Mask      : %s\n", d.Netmask)
	fmt.Fprintf(w, "Wildcard  : %s\n", d.Wildcard)
	fmt.Fprintf(w, "Magic     : %d (octet %d, mask value %d)\n", d.MagicNumber, d.InterestingOctet, d.MaskOctetValue)
}
