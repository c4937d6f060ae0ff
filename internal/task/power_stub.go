//go:build !linux

package task

import "errors"

type stubPower struct{}

// DefaultPower returns a controller that refuses to act off-linux.
func DefaultPower() PowerController { return stubPower{} }

var errUnsupported = errors.New("power control is only available on linux")

func (stubPower) Reboot() error   { return errUnsupported }
func (stubPower) PowerOff() error { return errUnsupported }
