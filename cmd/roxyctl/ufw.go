package main

import (
	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

var ufwCmd = &cobra.Command{
	Use:   "ufw",
	Short: "Manage the host firewall",
}

var ufwGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the active firewall rules",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return query[[]protocol.AccessRule](protocol.KindUfw, protocol.CmdGet, nil)
	},
}

var ufwAddCmd = &cobra.Command{
	Use:   "add <rule...>",
	Short: "Add firewall rules, each given as one ufw rule string",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindUfw, protocol.CmdAdd, args)
	},
}

var ufwDeleteCmd = &cobra.Command{
	Use:   "delete <rule...>",
	Short: "Delete firewall rules, each given as one ufw rule string",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindUfw, protocol.CmdDelete, args)
	},
}

var ufwEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start the firewall service",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return mutate(protocol.KindUfw, protocol.CmdEnable, nil)
	},
}

var ufwDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop the firewall service",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return mutate(protocol.KindUfw, protocol.CmdDisable, nil)
	},
}

var ufwInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Reset the firewall to factory defaults",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return mutate(protocol.KindUfw, protocol.CmdInit, nil)
	},
}

var ufwStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the firewall is active",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return query[bool](protocol.KindUfw, protocol.CmdStatus, nil)
	},
}

func init() {
	ufwCmd.AddCommand(ufwGetCmd, ufwAddCmd, ufwDeleteCmd, ufwEnableCmd,
		ufwDisableCmd, ufwInitCmd, ufwStatusCmd)
	rootCmd.AddCommand(ufwCmd)
}
