// Package ufw wraps the ufw firewall CLI: rule add/delete/reset, the
// systemd unit, and a parser for the "ufw status" rule table.
package ufw

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aicers/roxy/internal/oscmd"
	"github.com/aicers/roxy/internal/services"
	"github.com/aicers/roxy/protocol"
)

const unit = "ufw"

var (
	actionRe = regexp.MustCompile(`(?P<a>ALLOW|DENY)\s(?P<d>IN|OUT)`)
	deviceRe = regexp.MustCompile(`(on\s[a-z0-9]+)`)
	protoRe  = regexp.MustCompile(`(/[a-z]+)`)
)

// Client drives the firewall CLI and its systemd unit.
type Client struct {
	Exec oscmd.Executor
}

// New returns a client wired to the host defaults.
func New() *Client {
	return &Client{Exec: oscmd.Default}
}

// Rules returns the parsed rule table from "ufw status", nil when the
// table is empty or the firewall reports no rules.
func (c *Client) Rules() ([]protocol.AccessRule, error) {
	out, err := c.Exec.Output(unit, "status")
	if err != nil {
		return nil, fmt.Errorf("ufw status: %w", err)
	}
	return parseStatus(out), nil
}

// parseStatus extracts (action, from, to, proto, device) rows from the
// status table. "Anywhere" is normalized to "Any"; header and banner
// lines carry no ALLOW/DENY token and fall out naturally.
func parseStatus(output string) []protocol.AccessRule {
	var rules []protocol.AccessRule
	for _, line := range strings.Split(output, "\n") {
		after := strings.ReplaceAll(line, "Anywhere", "Any")

		var proto *string
		if m := protoRe.FindString(after); m != "" {
			after = strings.Replace(after, m, "", 1)
			p := strings.TrimPrefix(m, "/")
			proto = &p
		}

		var device *string
		if m := deviceRe.FindString(after); m != "" {
			after = strings.Replace(after, m, "", 1)
			d := strings.TrimPrefix(m, "on ")
			device = &d
		}

		after = actionRe.ReplaceAllString(after, ",$a $d,")
		parts := strings.Split(after, ",")
		if len(parts) < 3 {
			continue
		}
		rules = append(rules, protocol.AccessRule{
			Action: strings.TrimSpace(parts[1]),
			From:   strings.TrimSpace(parts[2]),
			To:     strings.TrimSpace(parts[0]),
			Proto:  proto,
			Device: device,
		})
	}
	return rules
}

// Add installs each rule. A rule is free-form ufw syntax, e.g.
// "allow in on eth0 to any port 80 proto tcp".
func (c *Client) Add(rules []string) error {
	for _, rule := range rules {
		if err := c.Exec.Run(unit, strings.Fields(rule)...); err != nil {
			return fmt.Errorf("ufw %s: %w", rule, err)
		}
	}
	return nil
}

// Delete removes each rule, matched by the same free-form syntax it
// was added with.
func (c *Client) Delete(rules []string) error {
	for _, rule := range rules {
		args := append([]string{"delete"}, strings.Fields(rule)...)
		if err := c.Exec.Run(unit, args...); err != nil {
			return fmt.Errorf("ufw delete %s: %w", rule, err)
		}
	}
	return nil
}

// Enable restarts the firewall unit.
func (c *Client) Enable() error {
	if _, err := services.Control(c.Exec, unit, protocol.CmdEnable); err != nil {
		return err
	}
	return nil
}

// Disable stops the firewall unit.
func (c *Client) Disable() error {
	if _, err := services.Control(c.Exec, unit, protocol.CmdDisable); err != nil {
		return err
	}
	return nil
}

// IsActive reports whether the firewall unit is running. systemctl and
// "ufw status" can disagree; the unit is authoritative here.
func (c *Client) IsActive() bool {
	return services.IsActive(c.Exec, unit)
}

// Reset wipes all rules back to defaults.
func (c *Client) Reset() error {
	return c.Exec.Run(unit, "reset")
}
