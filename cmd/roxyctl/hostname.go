package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

var hostnameCmd = &cobra.Command{
	Use:   "hostname",
	Short: "Show or change the host name",
}

var hostnameGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current host name",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		var name string
		if err := call(protocol.KindHostname, protocol.CmdGet, nil, &name); err != nil {
			return err
		}
		fmt.Println(name)
		return nil
	},
}

var hostnameSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set the host name",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindHostname, protocol.CmdSet, args[0])
	},
}

func init() {
	hostnameCmd.AddCommand(hostnameGetCmd, hostnameSetCmd)
	rootCmd.AddCommand(hostnameCmd)
}
