// Package services drives systemd units with a small verb vocabulary
// shared with the command protocol: disable stops a unit, enable and
// update restart it, status asks is-active.
package services

import (
	"fmt"
	"strings"

	"github.com/aicers/roxy/internal/oscmd"
	"github.com/aicers/roxy/protocol"
)

// Control applies cmd to the named unit and reports whether the unit
// ended up (or is) active. Verbs outside the vocabulary are an error.
func Control(exec oscmd.Executor, unit string, cmd protocol.SubCommand) (bool, error) {
	switch cmd {
	case protocol.CmdDisable:
		if err := exec.Run("systemctl", "stop", unit); err != nil {
			return false, fmt.Errorf("stop %s: %w", unit, err)
		}
		return true, nil
	case protocol.CmdEnable, protocol.CmdUpdate:
		if err := exec.Run("systemctl", "restart", unit); err != nil {
			return false, fmt.Errorf("restart %s: %w", unit, err)
		}
		return true, nil
	case protocol.CmdStatus:
		return IsActive(exec, unit), nil
	default:
		return false, fmt.Errorf("invalid service command %q", cmd)
	}
}

// IsActive reports whether the unit is running.
func IsActive(exec oscmd.Executor, unit string) bool {
	out, err := exec.Output("systemctl", "is-active", unit)
	return err == nil && strings.TrimSpace(out) == "active"
}
