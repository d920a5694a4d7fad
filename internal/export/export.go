// Package export serializes subnet descriptor sequences to Markdown and
// CSV files. The full sequence is always written, display truncation never
// applies here.
package export

import (
	"encoding/csv"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/subnetear/subnetear/internal/ipv4"
	"github.com/subnetear/subnetear/internal/subnet"
)

// csvHeader lists one column per descriptor field.
var csvHeader = []string{
	"Subnet", "Network", "Broadcast", "First Host", "Last Host",
	"Usable Hosts", "Netmask", "Wildcard", "Magic Number", "Interesting Octet",
}

// Writer exports reports into a directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter initializes a Writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// DefaultDir returns the fallback export directory, $HOME/Downloads.
func DefaultDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "failed to find home directory")
	}
	return filepath.Join(home, "Downloads"), nil
}

func (w *Writer) path(mode, ext string) string {
	ts := w.now().Format("20060102_150405")
	return filepath.Join(w.dir, fmt.Sprintf("subnet_%s_%s.%s", mode, ts, ext))
}

// Write exports infos as both Markdown and CSV, returning the two created
// file paths. The mode string becomes part of the file names.
func (w *Writer) Write(base ipv4.Network, mode string, infos []subnet.Descriptor) (md, csvPath string, err error) {
	if err = os.MkdirAll(w.dir, 0755); err != nil {
		return "", "", errors.Wrap(err, "failed to create export directory")
	}
	if md, err = w.Markdown(base, mode, infos); err != nil {
		return "", "", err
	}
	if csvPath, err = w.CSV(mode, infos); err != nil {
		return "", "", err
	}
	return md, csvPath, nil
}

// Markdown writes a report with a metadata preamble and one table row per
// descriptor.
func (w *Writer) Markdown(base ipv4.Network, mode string, infos []subnet.Descriptor) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Subnetting Export (%s)\n\n", mode)
	fmt.Fprintf(&b, "- Date: %s\n", w.now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, "- Base network: `%s`\n\n", base)
	b.WriteString("| Subnet | Network | Broadcast | First Host | Last Host | Hosts | Netmask | Wildcard | Magic |\n")
	b.WriteString("|---|---|---|---|---|---:|---|---|---:|\n")
	for _, d := range infos {
		fmt.Fprintf(&b, "| `%s` | `%s` | `%s` | `%s` | `%s` | %d | `%s` | `%s` | %d |\n",
			d.Subnet, d.Network, d.Broadcast, d.FirstHost, d.LastHost,
			d.UsableHosts, d.Netmask, d.Wildcard, d.MagicNumber)
	}
	p := w.path(mode, "md")
	if err := ioutil.WriteFile(p, []byte(b.String()), 0644); err != nil {
		return "", errors.Wrap(err, "failed to write markdown")
	}
	return p, nil
}

// CSV writes a semicolon-delimited table, one row per descriptor.
func (w *Writer) CSV(mode string, infos []subnet.Descriptor) (string, error) {
	p := w.path(mode, "csv")
	f, err := os.Create(p)
	if err != nil {
		return "", errors.Wrap(err, "failed to create csv")
	}
	cw := csv.NewWriter(f)
	cw.Comma = ';'
	writeErr := cw.Write(csvHeader)
	for _, d := range infos {
		if writeErr != nil {
			break
		}
		writeErr = cw.Write([]string{
			d.Subnet, d.Network, d.Broadcast, d.FirstHost, d.LastHost,
			strconv.FormatUint(d.UsableHosts, 10), d.Netmask, d.Wildcard,
			strconv.Itoa(d.MagicNumber), strconv.Itoa(d.InterestingOctet),
		})
	}
	cw.Flush()
	if writeErr == nil {
		writeErr = cw.Error()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return "", errors.Wrap(writeErr, "failed to write csv")
	}
	return p, nil
}
