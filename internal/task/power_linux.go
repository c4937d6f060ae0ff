//go:build linux

package task

import "golang.org/x/sys/unix"

type systemPower struct{}

// DefaultPower returns the real power controller, which reboots or
// powers off through the kernel immediately, with no shutdown dance.
func DefaultPower() PowerController { return systemPower{} }

func (systemPower) Reboot() error {
	return unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART)
}

func (systemPower) PowerOff() error {
	return unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF)
}
