package main

import (
	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Control systemd units",
}

func serviceVerb(verb protocol.SubCommand, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(verb) + " <unit>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return query[bool](protocol.KindService, verb, args[0])
		},
	}
}

func init() {
	serviceCmd.AddCommand(
		serviceVerb(protocol.CmdEnable, "Restart a unit"),
		serviceVerb(protocol.CmdDisable, "Stop a unit"),
		serviceVerb(protocol.CmdUpdate, "Restart a unit to pick up new configuration"),
		serviceVerb(protocol.CmdStatus, "Report whether a unit is active"),
	)
	rootCmd.AddCommand(serviceCmd)
}
