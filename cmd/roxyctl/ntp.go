package main

import (
	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

var ntpCmd = &cobra.Command{
	Use:   "ntp",
	Short: "Manage time synchronization",
}

var ntpGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the configured NTP servers",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return query[[]string](protocol.KindNtp, protocol.CmdGet, nil)
	},
}

var ntpSetCmd = &cobra.Command{
	Use:   "set [server...]",
	Short: "Replace the NTP server list (no servers clears it)",
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindNtp, protocol.CmdSet, args)
	},
}

var ntpEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start the NTP service",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return mutate(protocol.KindNtp, protocol.CmdEnable, nil)
	},
}

var ntpDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop the NTP service",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return mutate(protocol.KindNtp, protocol.CmdDisable, nil)
	},
}

var ntpStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the NTP service is active",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return query[bool](protocol.KindNtp, protocol.CmdStatus, nil)
	},
}

func init() {
	ntpCmd.AddCommand(ntpGetCmd, ntpSetCmd, ntpEnableCmd, ntpDisableCmd, ntpStatusCmd)
	rootCmd.AddCommand(ntpCmd)
}
