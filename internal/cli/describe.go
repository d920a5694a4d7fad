package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/subnetear/subnetear/internal/ipv4"
	"github.com/subnetear/subnetear/internal/render"
	"github.com/subnetear/subnetear/internal/subnet"
)

func getDescribeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "analyze a single network",
		RunE: func(cmd *cobra.Command, args []string) error {
			netStr, err := cmd.Flags().GetString("net")
			if err != nil {
				return err
			}
			n, err := ipv4.ParseCIDR(netStr)
			if err != nil {
				return err
			}
			render.New(printerConfig(v)).Detail(cmd.OutOrStdout(), subnet.Describe(n))
			return nil
		},
	}
	cmd.Flags().StringP("net", "n", "", "network in CIDR form, host addresses are normalized")
	return cmd
}
