package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/subnetear/subnetear/internal/ipv4"
	"github.com/subnetear/subnetear/internal/render"
	"github.com/subnetear/subnetear/internal/subnet"
)

func getFindCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "find which subnet of a base network contains an IP",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			netStr, err := f.GetString("net")
			if err != nil {
				return err
			}
			base, err := ipv4.ParseCIDR(netStr)
			if err != nil {
				return err
			}
			prefix, err := f.GetInt("prefix")
			if err != nil {
				return err
			}
			ipStr, err := f.GetString("ip")
			if err != nil {
				return err
			}
			addr, err := ipv4.ParseAddr(ipStr)
			if err != nil {
				return err
			}
			child, err := subnet.Locate(base, prefix, addr)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p := render.New(printerConfig(v))
			p.Success(out, fmt.Sprintf("IP %s is in subnet %s", addr, child))
			p.Detail(out, subnet.Describe(child))
			return nil
		},
	}
	cmd.Flags().StringP("net", "n", "", "base network in CIDR form")
	cmd.Flags().IntP("prefix", "p", 24, "subnet prefix length to check against")
	cmd.Flags().StringP("ip", "i", "", "IPv4 address to locate")
	return cmd
}
