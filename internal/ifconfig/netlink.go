package ifconfig

// Netlinker abstracts the live network stack so the engine can be
// exercised without touching kernel state. The real implementation
// talks rtnetlink; tests inject a fake.
type Netlinker interface {
	// LinkNames returns the names of all links known to the kernel.
	LinkNames() ([]string, error)
	// LinkSetUp brings the named link up.
	LinkSetUp(name string) error
	// AddrFlush4 removes all IPv4 addresses from the named link.
	AddrFlush4(name string) error
	// AddrDel removes one CIDR address from the named link.
	AddrDel(name, cidr string) error
}
