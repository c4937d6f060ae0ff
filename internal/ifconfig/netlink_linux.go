//go:build linux

package ifconfig

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

// realNetlinker talks to the kernel through rtnetlink.
type realNetlinker struct{}

// DefaultNetlinker returns the platform Netlinker.
func DefaultNetlinker() Netlinker {
	return &realNetlinker{}
}

func (r *realNetlinker) LinkNames() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	names := make([]string, 0, len(links))
	for _, link := range links {
		names = append(names, link.Attrs().Name)
	}
	return names, nil
}

func (r *realNetlinker) LinkSetUp(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("link %q: %w", name, err)
	}
	return netlink.LinkSetUp(link)
}

func (r *realNetlinker) AddrFlush4(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("link %q: %w", name, err)
	}
	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return fmt.Errorf("list addresses on %q: %w", name, err)
	}
	for i := range addrs {
		if err := netlink.AddrDel(link, &addrs[i]); err != nil {
			return fmt.Errorf("flush %s from %q: %w", addrs[i].IPNet, name, err)
		}
	}
	return nil
}

func (r *realNetlinker) AddrDel(name, cidr string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("link %q: %w", name, err)
	}
	addr, err := netlink.ParseAddr(cidr)
	if err != nil {
		return fmt.Errorf("parse address %q: %w", cidr, err)
	}
	return netlink.AddrDel(link, addr)
}
