package main

import (
	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show or change the host's version identity",
}

var versionGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the OS and product versions",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return query[protocol.Versions](protocol.KindVersion, protocol.CmdGet, nil)
	},
}

var versionSetOsCmd = &cobra.Command{
	Use:   "set-os <version>",
	Short: "Record a new OS version string",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindVersion, protocol.CmdSetOsVersion, args[0])
	},
}

var versionSetProductCmd = &cobra.Command{
	Use:   "set-product <version>",
	Short: "Record a new product version string",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindVersion, protocol.CmdSetProductVersion, args[0])
	},
}

var versionDiskCmd = &cobra.Command{
	Use:   "disk-usage",
	Short: "Print usage of the data volume",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		return query[protocol.DiskUsage](protocol.KindVersion, protocol.CmdStatus, nil)
	},
}

func init() {
	versionCmd.AddCommand(versionGetCmd, versionSetOsCmd, versionSetProductCmd, versionDiskCmd)
	rootCmd.AddCommand(versionCmd)
}
