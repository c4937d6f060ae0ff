package main

import (
	"github.com/spf13/cobra"

	"github.com/aicers/roxy/protocol"
)

var interfaceCmd = &cobra.Command{
	Use:   "interface",
	Short: "Inspect and change declared network interface configuration",
}

var interfaceGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Print declared configuration for one interface, or all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return query[[]protocol.NamedNic](protocol.KindInterface, protocol.CmdGet, optionalArg(args))
	},
}

var interfaceListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List live interface names, optionally filtered by prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return query[[]string](protocol.KindInterface, protocol.CmdList, optionalArg(args))
	},
}

var interfaceSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Replace one interface's declared configuration and apply it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(protocol.KindInterface, protocol.CmdSet, protocol.InterfaceRequest{
			Name: args[0],
			Nic:  nicFromFlags(cmd),
		})
	},
}

var interfaceInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Reset one interface to an empty declaration and flush it live",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(protocol.KindInterface, protocol.CmdInit, args[0])
	},
}

var interfaceDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove selected settings from one interface's declaration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(protocol.KindInterface, protocol.CmdDelete, protocol.InterfaceRequest{
			Name: args[0],
			Nic:  nicFromFlags(cmd),
		})
	},
}

// nicFromFlags builds the projection from whichever flags were given.
// Unset flags stay nil so the helper leaves those fields alone.
func nicFromFlags(cmd *cobra.Command) protocol.NicOutput {
	var nic protocol.NicOutput
	nic.Addresses, _ = cmd.Flags().GetStringArray("address")
	nic.Nameservers, _ = cmd.Flags().GetStringArray("nameserver")
	if cmd.Flags().Changed("dhcp4") {
		v, _ := cmd.Flags().GetBool("dhcp4")
		nic.DHCP4 = &v
	}
	if cmd.Flags().Changed("gateway4") {
		v, _ := cmd.Flags().GetString("gateway4")
		nic.Gateway4 = &v
	}
	return nic
}

func optionalArg(args []string) *string {
	if len(args) == 0 {
		return nil
	}
	return &args[0]
}

func init() {
	for _, c := range []*cobra.Command{interfaceSetCmd, interfaceDeleteCmd} {
		c.Flags().StringArray("address", nil, "interface address in CIDR form, repeatable")
		c.Flags().StringArray("nameserver", nil, "nameserver address, repeatable")
		c.Flags().Bool("dhcp4", false, "enable DHCPv4")
		c.Flags().String("gateway4", "", "IPv4 default gateway")
	}
	interfaceCmd.AddCommand(interfaceGetCmd, interfaceListCmd, interfaceSetCmd,
		interfaceInitCmd, interfaceDeleteCmd)
	rootCmd.AddCommand(interfaceCmd)
}
