package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/subnetear/subnetear/internal/ipv4"
	"github.com/subnetear/subnetear/internal/render"
	"github.com/subnetear/subnetear/internal/subnet"
)

// menu is the interactive mode: prompts with re-prompting on invalid
// input, one action per original calculator mode.
type menu struct {
	v   *viper.Viper
	in  *bufio.Scanner
	out io.Writer
	p   *render.Printer
}

func runMenu(v *viper.Viper, in io.Reader, out io.Writer) {
	m := &menu{
		v:   v,
		in:  bufio.NewScanner(in),
		out: out,
		p:   render.New(printerConfig(v)),
	}
	m.p.Headline(out, "subnetear: IPv4 subnetting calculator")
	for {
		fmt.Fprintln(out, "Menu:")
		fmt.Fprintln(out, "  1) Split a network into N subnets")
		fmt.Fprintln(out, "  2) Split a network to a target prefix /xx")
		fmt.Fprintln(out, "  3) Split by required hosts per subnet")
		fmt.Fprintln(out, "  4) Find the subnet containing an IP")
		fmt.Fprintln(out, "  5) Analyze a single network")
		fmt.Fprintln(out, "  0) Quit")
		choice, ok := m.read("\nChoice: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			m.splitByCount()
		case "2":
			m.splitByPrefix()
		case "3":
			m.splitByHosts()
		case "4":
			m.findAddr()
		case "5":
			m.analyze()
		case "0":
			m.p.Success(m.out, "Bye.")
			return
		default:
			m.p.Error(m.out, "Invalid choice, pick 0-5.")
		}
		fmt.Fprintln(out)
	}
}

// read prompts once and returns the trimmed line. ok is false on EOF,
// which ends the session.
func (m *menu) read(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// askInt re-prompts until a valid integer in [min, max] arrives. max <= 0
// means no upper bound.
func (m *menu) askInt(prompt string, min, max int) (int, bool) {
	for {
		raw, ok := m.read(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			m.p.Error(m.out, "Invalid number, example: 8")
			continue
		}
		if n < min {
			m.p.Error(m.out, fmt.Sprintf("Invalid: number must be >= %d.", min))
			continue
		}
		if max > 0 && n > max {
			m.p.Error(m.out, fmt.Sprintf("Invalid: number must be <= %d.", max))
			continue
		}
		return n, true
	}
}

func (m *menu) askNet(prompt string) (ipv4.Network, bool) {
	for {
		raw, ok := m.read(prompt)
		if !ok {
			return ipv4.Network{}, false
		}
		n, err := ipv4.ParseCIDR(raw)
		if err != nil {
			m.p.Error(m.out, "Invalid format, example: 192.168.1.0/24")
			continue
		}
		return n, true
	}
}

func (m *menu) askAddr(prompt string) (ipv4.Addr, bool) {
	for {
		raw, ok := m.read(prompt)
		if !ok {
			return 0, false
		}
		a, err := ipv4.ParseAddr(raw)
		if err != nil {
			m.p.Error(m.out, "Invalid IPv4 address, example: 10.0.0.5")
			continue
		}
		return a, true
	}
}

func (m *menu) yesNo(prompt string) bool {
	raw, ok := m.read(prompt)
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.ToLower(raw), "y")
}

// finish renders a split result and offers the export.
func (m *menu) finish(base ipv4.Network, mode string, s subnet.Split) {
	m.p.Summary(m.out, base, s)
	infos := subnet.DescribeAll(s.Networks)
	fmt.Fprintln(m.out)
	m.p.List(m.out, infos)
	if !m.yesNo("Export (MD+CSV)? (y/n): ") {
		return
	}
	if err := exportInfos(m.v, m.p, m.out, base, mode, infos); err != nil {
		m.p.Error(m.out, err.Error())
	}
}

func (m *menu) splitByCount() {
	m.p.Headline(m.out, "1) Split a network into N subnets")
	base, ok := m.askNet("Base network (like 192.168.1.0/24): ")
	if !ok {
		return
	}
	n, ok := m.askInt("How many subnets (N)?: ", 1, 0)
	if !ok {
		return
	}
	s, err := subnet.ByCount(base, n)
	if err != nil {
		m.p.Error(m.out, err.Error())
		return
	}
	fmt.Fprintf(m.out, "\nBorrowed bits: %d\n", s.Bits)
	m.finish(base, "by_count", s)
}

func (m *menu) splitByPrefix() {
	m.p.Headline(m.out, "2) Split a network to a target prefix /xx")
	base, ok := m.askNet("Base network (like 10.0.0.0/16): ")
	if !ok {
		return
	}
	prefix, ok := m.askInt("Target prefix (like 24): ", 0, 32)
	if !ok {
		return
	}
	s, err := subnet.ByPrefix(base, prefix)
	if err != nil {
		m.p.Error(m.out, err.Error())
		return
	}
	m.finish(base, "by_prefix", s)
}

func (m *menu) splitByHosts() {
	m.p.Headline(m.out, "3) Split by required hosts per subnet")
	base, ok := m.askNet("Base network (like 172.16.0.0/20): ")
	if !ok {
		return
	}
	hosts, ok := m.askInt("Required usable hosts per subnet: ", 1, 0)
	if !ok {
		return
	}
	s, err := subnet.ByHosts(base, hosts)
	if err != nil {
		m.p.Error(m.out, err.Error())
		return
	}
	fmt.Fprintf(m.out, "\nHost bits: %d\n", s.Bits)
	m.finish(base, "by_hosts", s)
}

func (m *menu) findAddr() {
	m.p.Headline(m.out, "4) Find the subnet containing an IP")
	base, ok := m.askNet("Base network (like 192.168.1.0/24): ")
	if !ok {
		return
	}
	prefix, ok := m.askInt("Subnet prefix to check against (like 27): ", 0, 32)
	if !ok {
		return
	}
	if prefix < base.Prefix() {
		m.p.Error(m.out, fmt.Sprintf("Target /%d is a larger block than base /%d, pick a prefix >= %d.", prefix, base.Prefix(), base.Prefix()))
		return
	}
	addr, ok := m.askAddr("IP address (like 192.168.1.130): ")
	if !ok {
		return
	}
	child, err := subnet.Locate(base, prefix, addr)
	if err != nil {
		m.p.Warn(m.out, fmt.Sprintf("IP %s is NOT in base network %s.", addr, base))
		return
	}
	m.p.Success(m.out, fmt.Sprintf("Hit: IP %s is in subnet %s", addr, child))
	m.p.Detail(m.out, subnet.Describe(child))
}

func (m *menu) analyze() {
	m.p.Headline(m.out, "5) Analyze a single network")
	n, ok := m.askNet("IP/CIDR (like 192.168.1.10/27 or 10.0.0.0/8): ")
	if !ok {
		return
	}
	m.p.Detail(m.out, subnet.Describe(n))
}
