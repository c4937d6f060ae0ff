package main

import (
	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

func powerCommand(use, short string, kind protocol.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return mutate(kind, protocol.CmdNone, nil)
		},
	}
}

func init() {
	rootCmd.AddCommand(
		powerCommand("reboot", "Reboot immediately via syscall", protocol.KindReboot),
		powerCommand("poweroff", "Power off immediately via syscall", protocol.KindPowerOff),
		powerCommand("graceful-reboot", "Reboot after services shut down cleanly", protocol.KindGracefulReboot),
		powerCommand("graceful-poweroff", "Power off after services shut down cleanly", protocol.KindGracefulPowerOff),
	)
}
