package main

import (
	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

var syslogCmd = &cobra.Command{
	Use:   "syslog",
	Short: "Manage remote syslog forwarding",
}

var syslogGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the configured remote syslog servers",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return query[[]protocol.SyslogServer](protocol.KindSyslog, protocol.CmdGet, nil)
	},
}

var syslogSetCmd = &cobra.Command{
	Use:   "set <addr...>",
	Short: "Replace the forwarding targets (@host:port for UDP, @@host:port for TCP)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindSyslog, protocol.CmdSet, args)
	},
}

var syslogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Remove all forwarding targets",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return mutate(protocol.KindSyslog, protocol.CmdInit, nil)
	},
}

var syslogEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Restart the syslog service",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return mutate(protocol.KindSyslog, protocol.CmdEnable, nil)
	},
}

func init() {
	syslogCmd.AddCommand(syslogGetCmd, syslogSetCmd, syslogInitCmd, syslogEnableCmd)
	rootCmd.AddCommand(syslogCmd)
}
