// Package oscmd runs external system commands with a pinned search
// path. Every subprocess the privileged helper spawns goes through an
// Executor so the caller's environment never leaks into command
// resolution and tests can substitute a fake.
package oscmd

import (
	"fmt"
	"os/exec"
	"strings"
)

// DefaultPath is the only search path used to resolve commands. The
// helper never inherits the caller's PATH.
const DefaultPath = "/usr/sbin:/usr/bin:/sbin:/bin:/usr/local/aice/bin"

// Executor abstracts subprocess invocation.
type Executor interface {
	// Run executes the command and reports success by error value.
	Run(name string, arg ...string) error
	// Output executes the command and returns its stdout on success.
	Output(name string, arg ...string) (string, error)
	// Spawn starts the command without waiting for it to finish.
	// Used for commands that take the host down with them.
	Spawn(name string, arg ...string) error
}

// Default is the Executor used when none is injected.
var Default Executor = &RealExecutor{}

// RealExecutor runs commands through os/exec with PATH pinned to
// DefaultPath plus any extra directories.
type RealExecutor struct {
	// ExtraPath entries are appended to DefaultPath.
	ExtraPath []string
}

func (r *RealExecutor) env() []string {
	path := DefaultPath
	if len(r.ExtraPath) > 0 {
		path = path + ":" + strings.Join(r.ExtraPath, ":")
	}
	return []string{"PATH=" + path}
}

// Run executes the command, discarding output.
func (r *RealExecutor) Run(name string, arg ...string) error {
	cmd := exec.Command(name, arg...)
	cmd.Env = r.env()
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("command %s %v failed: %w, output: %s", name, arg, err, string(output))
	}
	return nil
}

// Output executes the command and returns its stdout.
func (r *RealExecutor) Output(name string, arg ...string) (string, error) {
	cmd := exec.Command(name, arg...)
	cmd.Env = r.env()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", name, arg, err)
	}
	return string(output), nil
}

// Spawn starts the command and returns without waiting. The child is
// left to run to completion (or to take the system down).
func (r *RealExecutor) Spawn(name string, arg ...string) error {
	cmd := exec.Command(name, arg...)
	cmd.Env = r.env()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("command %s %v failed to start: %w", name, arg, err)
	}
	return nil
}
