// Package ntp manages the host's NTP client: the server list in
// /etc/ntp.conf and the ntp systemd unit.
package ntp

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/aicers/roxy/internal/linefile"
	"github.com/aicers/roxy/internal/oscmd"
)

// DefaultConfPath is the NTP client configuration file.
const DefaultConfPath = "/etc/ntp.conf"

const unit = "ntp"

var serverRe = regexp.MustCompile(`server\s+([a-z0-9.\-]+)\s+iburst`)

// Client rewrites the configuration file and drives the systemd unit.
type Client struct {
	ConfPath string
	Exec     oscmd.Executor
}

// New returns a client wired to the host defaults.
func New() *Client {
	return &Client{ConfPath: DefaultConfPath, Exec: oscmd.Default}
}

// Set replaces the configured server list: every existing "server "
// line is dropped, one "server <addr> iburst" line is appended per
// entry, and the unit is restarted to pick the change up.
func (c *Client) Set(servers []string) error {
	err := linefile.Rewrite(c.ConfPath, func(lines []string) []string {
		var out []string
		for _, line := range lines {
			if strings.HasPrefix(line, "server ") {
				continue
			}
			out = append(out, line)
		}
		for _, server := range servers {
			out = append(out, fmt.Sprintf("server %s iburst", server))
		}
		return out
	})
	if err != nil {
		return err
	}
	return c.Exec.Run("systemctl", "restart", unit)
}

// Get returns the configured servers, nil when none are set.
func (c *Client) Get() ([]string, error) {
	contents, err := os.ReadFile(c.ConfPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.ConfPath, err)
	}
	var servers []string
	for _, line := range linefile.Split(string(contents)) {
		if !strings.HasPrefix(line, "server ") {
			continue
		}
		if m := serverRe.FindStringSubmatch(line); m != nil {
			servers = append(servers, m[1])
		}
	}
	return servers, nil
}

// IsActive reports whether the unit is running.
func (c *Client) IsActive() bool {
	out, err := c.Exec.Output("systemctl", "is-active", unit)
	return err == nil && strings.TrimSpace(out) == "active"
}

// Enable starts the unit.
func (c *Client) Enable() error {
	return c.Exec.Run("systemctl", "start", unit)
}

// Disable stops the unit.
func (c *Client) Disable() error {
	return c.Exec.Run("systemctl", "stop", unit)
}
