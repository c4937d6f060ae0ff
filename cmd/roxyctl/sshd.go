package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

var sshdCmd = &cobra.Command{
	Use:   "sshd",
	Short: "Manage the SSH daemon",
}

var sshdGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the configured SSH port",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		var port uint16
		if err := call(protocol.KindSshd, protocol.CmdGet, nil, &port); err != nil {
			return err
		}
		fmt.Println(port)
		return nil
	},
}

var sshdSetCmd = &cobra.Command{
	Use:   "set <port>",
	Short: "Change the SSH port and restart the daemon",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindSshd, protocol.CmdSet, args[0])
	},
}

var sshdEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Restart the SSH daemon",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return mutate(protocol.KindSshd, protocol.CmdEnable, nil)
	},
}

func init() {
	sshdCmd.AddCommand(sshdGetCmd, sshdSetCmd, sshdEnableCmd)
	rootCmd.AddCommand(sshdCmd)
}
