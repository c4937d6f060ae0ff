// Package client is the unprivileged side of the command protocol: it
// spawns the privileged helper, feeds it one request envelope on
// stdin, and decodes the result from stdout.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/aicers/roxy/internal/oscmd"
	"github.com/aicers/roxy/protocol"
)

// DefaultHelperPath is where the privileged helper is installed.
const DefaultHelperPath = "/usr/local/aice/bin/roxy"

// ErrTransport marks round-trip failures: the helper could not be
// spawned, fed, or its output decoded. Distinct from a command-level
// failure, which is a CommandError.
var ErrTransport = errors.New("transport failed")

// CommandError is the failure string the helper returned for a
// command that reached it but did not succeed.
type CommandError string

func (e CommandError) Error() string { return string(e) }

// Client calls the privileged helper. The helper never inherits the
// caller's environment; its search path is pinned.
type Client struct {
	// Path is the helper binary.
	Path string
	// Env is the helper's entire environment.
	Env []string
}

// New returns a client wired to the installed helper.
func New() *Client {
	return &Client{
		Path: DefaultHelperPath,
		Env:  []string{"PATH=" + oscmd.DefaultPath},
	}
}

// Call round-trips one request and decodes the success body into out
// (out may be nil when the body is not wanted). A failed command comes
// back as a CommandError; anything that breaks the round trip itself
// wraps ErrTransport.
func (c *Client) Call(ctx context.Context, req *protocol.Request, out any) error {
	envelope, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", ErrTransport, err)
	}

	cmd := exec.CommandContext(ctx, c.Path)
	cmd.Env = c.Env
	cmd.Stderr = os.Stderr
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: open stdin: %v", ErrTransport, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: spawn %s: %v", ErrTransport, c.Path, err)
	}

	// The helper may start writing before it has read all its input;
	// both pipes have bounded buffers, so the writer must not share
	// the reader's goroutine.
	writeErr := make(chan error, 1)
	go func() {
		_, err := stdin.Write(envelope)
		if cerr := stdin.Close(); err == nil {
			err = cerr
		}
		writeErr <- err
	}()

	waitErr := cmd.Wait()
	if err := <-writeErr; err != nil {
		return fmt.Errorf("%w: write request: %v", ErrTransport, err)
	}

	// A non-zero exit means the helper could not produce a well-formed
	// result for the request, but it still reports the failure on
	// stdout when it can; prefer that over the bare exit status.
	var res protocol.Result
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		if waitErr != nil {
			return fmt.Errorf("%w: %v", ErrTransport, waitErr)
		}
		return fmt.Errorf("%w: decode result: %v", ErrTransport, err)
	}

	if res.Failed() {
		return CommandError(*res.Err)
	}
	if out == nil {
		return nil
	}
	if err := res.Decode(out); err != nil {
		return fmt.Errorf("%w: decode response body: %v", ErrTransport, err)
	}
	return nil
}
