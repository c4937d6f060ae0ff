// Package syslog manages rsyslog remote forwarding: the destination
// lines in /etc/rsyslog.d/50-default.conf and the rsyslog unit.
//
// Destinations use the rsyslog shorthand: "@host:port" forwards over
// UDP, "@@host:port" over TCP. The facility is fixed to "user.*".
package syslog

import (
	"fmt"
	"net/netip"
	"os"
	"strings"

	"github.com/aicers/roxy/internal/linefile"
	"github.com/aicers/roxy/internal/oscmd"
	"github.com/aicers/roxy/protocol"
)

// DefaultConfPath is the rsyslog drop-in holding the forwarding rules.
const DefaultConfPath = "/etc/rsyslog.d/50-default.conf"

const (
	unit     = "rsyslog"
	facility = "user.*"
)

// Client rewrites the drop-in and drives the systemd unit.
type Client struct {
	ConfPath string
	Exec     oscmd.Executor
}

// New returns a client wired to the host defaults.
func New() *Client {
	return &Client{ConfPath: DefaultConfPath, Exec: oscmd.Default}
}

// Set replaces the forwarding destinations. Every entry must be a
// valid "@host:port" or "@@host:port"; existing forwarding lines are
// dropped, the new ones appended, and the unit restarted. An empty
// list just clears forwarding.
func (c *Client) Set(addrs []string) error {
	for _, addr := range addrs {
		plain := strings.TrimSpace(strings.ReplaceAll(addr, "@", ""))
		if _, err := netip.ParseAddrPort(plain); err != nil {
			return fmt.Errorf("invalid address %q: %w", addr, err)
		}
	}

	err := linefile.Rewrite(c.ConfPath, func(lines []string) []string {
		var out []string
		for _, line := range lines {
			if strings.HasPrefix(line, "#") || !strings.Contains(line, "@") {
				out = append(out, line)
			}
		}
		for _, addr := range addrs {
			out = append(out, facility+" "+addr)
		}
		return out
	})
	if err != nil {
		return err
	}
	return c.Exec.Run("systemctl", "restart", unit)
}

// Init clears all forwarding destinations.
func (c *Client) Init() error {
	return c.Set(nil)
}

// Get returns the configured destinations, nil when none are set.
func (c *Client) Get() ([]protocol.SyslogServer, error) {
	contents, err := os.ReadFile(c.ConfPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.ConfPath, err)
	}

	var servers []protocol.SyslogServer
	for _, line := range linefile.Split(string(contents)) {
		if strings.HasPrefix(line, "#") {
			continue
		}
		var sep, proto string
		switch {
		case strings.Contains(line, "@@"):
			sep, proto = "@@", "tcp"
		case strings.Contains(line, "@"):
			sep, proto = "@", "udp"
		default:
			continue
		}
		parts := strings.SplitN(strings.TrimSpace(line), sep, 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			continue
		}
		servers = append(servers, protocol.SyslogServer{
			Facility: strings.TrimSpace(parts[0]),
			Proto:    proto,
			Addr:     parts[1],
		})
	}
	return servers, nil
}

// Start restarts the unit without touching the configuration.
func (c *Client) Start() error {
	return c.Exec.Run("systemctl", "restart", unit)
}
