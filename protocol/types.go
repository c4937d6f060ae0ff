package protocol

// Caller-facing payload types. These are the argument and response
// bodies carried opaquely inside the envelope; both sides must agree
// on which type goes with which (kind, cmd) pair:
//
//	hostname/get            → string
//	hostname/set            ← string
//	interface/get           ← *string, → []NamedNic
//	interface/list          ← *string, → []string
//	interface/set, delete   ← InterfaceRequest
//	interface/init          ← string
//	ntp/get                 → []string (nil when unset)
//	ntp/set                 ← []string
//	ntp/status              → bool
//	syslog/get              → []SyslogServer (nil when unset)
//	syslog/set              ← []string
//	sshd/get                → uint16
//	sshd/set                ← string
//	service/*               ← string (unit name), → bool
//	ufw/get                 → []AccessRule (nil when none)
//	ufw/add, delete         ← []string (rule text)
//	ufw/status              → bool
//	version/get             → Versions
//	version/set_*_version   ← string
//
// Mutating commands respond with the string Okay.

// NicOutput is the external projection of one interface's declared
// configuration. It flattens the nameserver map to a plain address
// list and hides the boot-optional flag, which external callers can
// neither set nor see.
type NicOutput struct {
	Addresses   []string `json:"addresses,omitempty" cbor:"addresses,omitempty"`
	DHCP4       *bool    `json:"dhcp4,omitempty" cbor:"dhcp4,omitempty"`
	Gateway4    *string  `json:"gateway4,omitempty" cbor:"gateway4,omitempty"`
	Nameservers []string `json:"nameservers,omitempty" cbor:"nameservers,omitempty"`
}

// NamedNic pairs an interface name with its projection in responses.
type NamedNic struct {
	Name string    `json:"name" cbor:"name"`
	Nic  NicOutput `json:"nic" cbor:"nic"`
}

// InterfaceRequest is the argument for interface set and delete.
type InterfaceRequest struct {
	Name string    `json:"name" cbor:"name"`
	Nic  NicOutput `json:"nic" cbor:"nic"`
}

// AccessRule is one parsed row of the firewall status table.
type AccessRule struct {
	Action string  `json:"action" cbor:"action"`
	From   string  `json:"from" cbor:"from"`
	To     string  `json:"to" cbor:"to"`
	Proto  *string `json:"proto,omitempty" cbor:"proto,omitempty"`
	Device *string `json:"device,omitempty" cbor:"device,omitempty"`
}

// SyslogServer is one configured remote syslog destination.
type SyslogServer struct {
	Facility string `json:"facility" cbor:"facility"`
	Proto    string `json:"proto" cbor:"proto"`
	Addr     string `json:"addr" cbor:"addr"`
}

// Versions is the host's OS and product identity.
type Versions struct {
	OS      string `json:"os" cbor:"os"`
	Product string `json:"product" cbor:"product"`
}

// DiskUsage reports usage for one mount point.
type DiskUsage struct {
	MountPoint string  `json:"mount_point" cbor:"mount_point"`
	TotalBytes uint64  `json:"total_bytes" cbor:"total_bytes"`
	UsedBytes  uint64  `json:"used_bytes" cbor:"used_bytes"`
	UsedRatio  float64 `json:"used_ratio" cbor:"used_ratio"`
}
