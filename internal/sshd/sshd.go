// Package sshd manages the SSH daemon's listen port in sshd_config
// and restarts the ssh unit.
package sshd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aicers/roxy/internal/linefile"
	"github.com/aicers/roxy/internal/oscmd"
)

// DefaultConfPath is the SSH daemon configuration file.
const DefaultConfPath = "/etc/ssh/sshd_config"

const (
	unit        = "ssh"
	defaultPort = 22
)

// Client rewrites the configuration file and drives the systemd unit.
type Client struct {
	ConfPath string
	Exec     oscmd.Executor
}

// New returns a client wired to the host defaults.
func New() *Client {
	return &Client{ConfPath: DefaultConfPath, Exec: oscmd.Default}
}

// Port returns the configured listen port, or 22 when the config does
// not set one.
func (c *Client) Port() (uint16, error) {
	contents, err := os.ReadFile(c.ConfPath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", c.ConfPath, err)
	}
	for _, line := range linefile.Split(string(contents)) {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "Port" {
			port, err := parsePort(fields[1])
			if err != nil {
				return 0, fmt.Errorf("parse %s: %w", c.ConfPath, err)
			}
			return port, nil
		}
	}
	return defaultPort, nil
}

// SetPort replaces the listen port. The value must parse as a valid
// port number; existing Port lines are dropped, the new one appended,
// and the unit restarted.
func (c *Client) SetPort(value string) error {
	port, err := parsePort(value)
	if err != nil {
		return err
	}

	err = linefile.Rewrite(c.ConfPath, func(lines []string) []string {
		var out []string
		for _, line := range lines {
			fields := strings.Fields(line)
			if len(fields) >= 1 && fields[0] == "Port" {
				continue
			}
			out = append(out, line)
		}
		return append(out, fmt.Sprintf("Port %d", port))
	})
	if err != nil {
		return err
	}
	return c.Exec.Run("systemctl", "restart", unit)
}

// Start restarts the unit without touching the configuration.
func (c *Client) Start() error {
	return c.Exec.Run("systemctl", "restart", unit)
}

func parsePort(value string) (uint16, error) {
	port, err := strconv.ParseUint(strings.TrimSpace(value), 10, 16)
	if err != nil || port == 0 {
		return 0, fmt.Errorf("invalid port %q", value)
	}
	return uint16(port), nil
}
