// Package task dispatches decoded commands inside the privileged
// process. Verb applicability is an explicit registry: every valid
// (kind, cmd) pair has exactly one handler, everything else is
// rejected before any side effect.
package task

import (
	"errors"
	"fmt"
	"math"

	"github.com/aicers/roxy/internal/logging"
	"github.com/aicers/roxy/protocol"
)

// Handler serves one (kind, cmd) pair. The returned value is the
// response body; mutating handlers return protocol.Okay.
type Handler func(req *protocol.Request) (any, error)

type handlerKey struct {
	kind protocol.Kind
	cmd  protocol.SubCommand
}

// errBadArgument marks an argument that failed to decode, which is a
// protocol error (invalid command) rather than a handler failure.
var errBadArgument = errors.New("bad argument")

// argument decodes the request payload into the handler's expected
// type, tagging failures as protocol errors.
func argument[T any](req *protocol.Request) (T, error) {
	var v T
	if err := req.DecodeArg(&v); err != nil {
		return v, fmt.Errorf("%w: %v", errBadArgument, err)
	}
	return v, nil
}

// Executor routes requests to handlers and packages their results.
// It carries no state across requests.
type Executor struct {
	// MaxResponseBytes bounds the serialized response body. The wire
	// protocol carries the length in 32 bits; a larger body is a hard
	// "message too long" failure, never a truncation.
	MaxResponseBytes int64

	handlers map[handlerKey]Handler
	log      *logging.Logger
}

// NewExecutor returns an executor with an empty registry.
func NewExecutor() *Executor {
	return &Executor{
		MaxResponseBytes: math.MaxUint32,
		handlers:         make(map[handlerKey]Handler),
		log:              logging.WithComponent("task"),
	}
}

// Register binds a handler to one (kind, cmd) pair. Power-state kinds
// carry no verb and register under protocol.CmdNone.
func (e *Executor) Register(kind protocol.Kind, cmd protocol.SubCommand, h Handler) {
	e.handlers[handlerKey{kind: kind, cmd: cmd}] = h
}

// Execute runs one request to completion and always produces a
// Result; malformed input becomes a typed failure, never a panic.
func (e *Executor) Execute(req *protocol.Request) protocol.Result {
	e.log.Info("task received", "kind", req.Kind, "cmd", req.Cmd, "host", req.Host, "process", req.Process)

	h, ok := e.handlers[handlerKey{kind: req.Kind, cmd: req.Cmd}]
	if !ok {
		e.log.Warn("unknown command", "kind", req.Kind, "cmd", req.Cmd)
		return protocol.ErrResult(protocol.ErrInvalidCommand)
	}

	body, err := h(req)
	if err != nil {
		if errors.Is(err, errBadArgument) {
			e.log.Warn("argument decode failed", "kind", req.Kind, "cmd", req.Cmd, "error", err)
			return protocol.ErrResult(protocol.ErrInvalidCommand)
		}
		e.log.Error("task failed", "kind", req.Kind, "cmd", req.Cmd, "error", err)
		return protocol.ErrResult(protocol.ErrFail)
	}

	payload, err := protocol.EncodeBody(body)
	if err != nil {
		e.log.Error("response encoding failed", "kind", req.Kind, "cmd", req.Cmd, "error", err)
		return protocol.ErrResult(protocol.ErrEncodeResponse)
	}
	if int64(len(payload)) > e.MaxResponseBytes {
		e.log.Error("response too long", "kind", req.Kind, "cmd", req.Cmd, "bytes", len(payload))
		return protocol.ErrResult(protocol.ErrMessageTooLong)
	}
	return protocol.OkResult(payload)
}
