// Command roxy is the privileged helper. It reads one JSON request
// envelope from standard input, executes it, and writes one JSON
// result to standard output. Stdout carries nothing but the result;
// logs go to stderr.
//
// It is installed setuid or invoked through sudo by the unprivileged
// agent; it never prompts and never reads more than a single request.
package main

import (
	"encoding/json"
	"os"

	"github.com/aicers/roxy/internal/logging"
	"github.com/aicers/roxy/internal/task"
	"github.com/aicers/roxy/protocol"
)

func main() {
	log := logging.WithComponent("roxy")

	var req protocol.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		log.Error("unparsable request", "error", err)
		writeResult(log, protocol.ErrResult(protocol.ErrInvalidCommand))
		os.Exit(1)
	}

	res := task.New(task.DefaultResources()).Execute(&req)
	if !writeResult(log, res) {
		os.Exit(1)
	}
}

func writeResult(log *logging.Logger, res protocol.Result) bool {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&res); err != nil {
		log.Error("write result", "error", err)
		return false
	}
	return true
}
