package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/subnetear/subnetear/internal/ipv4"
	"github.com/subnetear/subnetear/internal/render"
	"github.com/subnetear/subnetear/internal/subnet"
)

// Split mode names, also used in export file names.
const (
	modeCount  = "count"
	modePrefix = "prefix"
	modeHosts  = "hosts"
)

func addSplitFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("net", "n", "", "base network in CIDR form, like 192.168.1.0/24")
	cmd.Flags().BoolP("export", "e", false, "export results as Markdown and CSV")
}

func runSplit(v *viper.Viper, cmd *cobra.Command, mode string) error {
	f := cmd.Flags()
	netStr, err := f.GetString("net")
	if err != nil {
		return err
	}
	base, err := ipv4.ParseCIDR(netStr)
	if err != nil {
		return err
	}
	var s subnet.Split
	switch mode {
	case modeCount:
		var n int
		if n, err = f.GetInt("subnets"); err != nil {
			return err
		}
		s, err = subnet.ByCount(base, n)
	case modePrefix:
		var p int
		if p, err = f.GetInt("prefix"); err != nil {
			return err
		}
		s, err = subnet.ByPrefix(base, p)
	case modeHosts:
		var h int
		if h, err = f.GetInt("hosts"); err != nil {
			return err
		}
		s, err = subnet.ByHosts(base, h)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := render.New(printerConfig(v))
	switch mode {
	case modeCount:
		fmt.Fprintf(out, "Borrowed bits: %d\n", s.Bits)
	case modeHosts:
		fmt.Fprintf(out, "Host bits: %d\n", s.Bits)
	}
	p.Summary(out, base, s)
	fmt.Fprintln(out)
	infos := subnet.DescribeAll(s.Networks)
	p.List(out, infos)

	doExport, err := f.GetBool("export")
	if err != nil {
		return err
	}
	if doExport {
		return exportInfos(v, p, out, base, "by_"+mode, infos)
	}
	return nil
}

func exportInfos(
	v *viper.Viper, p *render.Printer, out io.Writer,
	base ipv4.Network, mode string, infos []subnet.Descriptor,
) error {
	w, err := exportWriter(v)
	if err != nil {
		return err
	}
	md, csvPath, err := w.Write(base, mode, infos)
	if err != nil {
		return err
	}
	p.Success(out, fmt.Sprintf("exported:\n  MD : %s\n  CSV: %s", md, csvPath))
	return nil
}

func getCountCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "split a network into at least N subnets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(v, cmd, modeCount)
		},
	}
	addSplitFlags(cmd)
	cmd.Flags().IntP("subnets", "s", 1, "how many subnets are needed")
	return cmd
}

func getPrefixCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefix",
		Short: "split a network into subnets of a target prefix length",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(v, cmd, modePrefix)
		},
	}
	addSplitFlags(cmd)
	cmd.Flags().IntP("prefix", "p", 24, "target prefix length")
	return cmd
}

func getHostsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "split a network so each subnet fits the required usable hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(v, cmd, modeHosts)
		},
	}
	addSplitFlags(cmd)
	cmd.Flags().Int("hosts", 1, "required usable hosts per subnet")
	return cmd
}
