// Package ifconfig manages declarative netplan interface configuration.
// Configuration lives as YAML fragments in one directory; every
// operation loads a fresh merged document, mutates it in memory, and
// either discards it or writes it back through an atomic apply. No
// state survives a request.
package ifconfig

import (
	"github.com/aicers/roxy/protocol"
)

// Nic is one interface's full declared configuration as it appears in
// a netplan document. The nameserver map is keyed the netplan way
// ("addresses", "search"). Optional marks the interface as not
// required at boot; the external projection hides it.
type Nic struct {
	Addresses   []string            `yaml:"addresses,omitempty"`
	DHCP4       *bool               `yaml:"dhcp4,omitempty"`
	Gateway4    *string             `yaml:"gateway4,omitempty"`
	Nameservers map[string][]string `yaml:"nameservers,omitempty"`
	Optional    *bool               `yaml:"optional,omitempty"`
}

// nameserverAddresses is the nameserver map key the projection exposes.
const nameserverAddresses = "addresses"

// FromOutput expands the external projection into a full record. The
// flat nameserver list becomes the "addresses" key with an empty
// "search" list; the boot-optional flag is not settable externally.
func FromOutput(o *protocol.NicOutput) Nic {
	var nameservers map[string][]string
	if o.Nameservers != nil {
		nameservers = map[string][]string{
			nameserverAddresses: append([]string(nil), o.Nameservers...),
			"search":            {},
		}
	}
	return Nic{
		Addresses:   append([]string(nil), o.Addresses...),
		DHCP4:       o.DHCP4,
		Gateway4:    o.Gateway4,
		Nameservers: nameservers,
	}
}

// ToOutput flattens a full record into the external projection. Only
// the "addresses" nameserver key survives; "search" entries and the
// boot-optional flag are dropped.
func ToOutput(n *Nic) protocol.NicOutput {
	var nameservers []string
	if n.Nameservers != nil {
		if addrs, ok := n.Nameservers[nameserverAddresses]; ok {
			nameservers = append([]string(nil), addrs...)
		}
	}
	return protocol.NicOutput{
		Addresses:   n.Addresses,
		DHCP4:       n.DHCP4,
		Gateway4:    n.Gateway4,
		Nameservers: nameservers,
	}
}
