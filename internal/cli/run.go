package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func getRoot(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subnetear",
		Short: "subnetear is an IPv4 subnetting calculator",
		Long: `subnetear computes IPv4 subnetting facts: network and broadcast
addresses, usable host ranges, masks, wildcards and magic numbers, and
splits networks by subnet count, target prefix or required hosts.

Without a subcommand it starts the interactive menu.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) { initConfig(v) },
		Run: func(cmd *cobra.Command, args []string) {
			runMenu(v, os.Stdin, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/subnetear.yml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().IntP("limit", "L", 64, "max subnets to display, 0 for all")

	mustBind(v.BindPFlag("display.nocolor", cmd.PersistentFlags().Lookup("no-color")))
	mustBind(v.BindPFlag("display.limit", cmd.PersistentFlags().Lookup("limit")))

	cmd.AddCommand(getCountCmd(v))
	cmd.AddCommand(getPrefixCmd(v))
	cmd.AddCommand(getHostsCmd(v))
	cmd.AddCommand(getFindCmd(v))
	cmd.AddCommand(getDescribeCmd(v))
	cmd.AddCommand(getServeCmd(v))

	return cmd
}
