package protocol

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Request is the transport envelope written to the privileged helper's
// standard input as JSON. Arg is CBOR-encoded and rides through the
// JSON layer base64-encoded (encoding/json's []byte behavior), so the
// envelope stays ASCII-safe regardless of the payload.
type Request struct {
	// Host and Process identify the origin of the request. They are
	// informational; the helper does not route on them.
	Host    string     `json:"host,omitempty"`
	Process string     `json:"process,omitempty"`
	Kind    Kind       `json:"kind"`
	Cmd     SubCommand `json:"cmd,omitempty"`
	Arg     []byte     `json:"arg,omitempty"`
}

// NewRequest builds a request envelope, serializing arg to CBOR. It
// fails only if arg itself cannot be serialized, which indicates a
// caller bug rather than a runtime condition. A nil arg encodes as
// CBOR null and decodes into any pointer type as nil.
func NewRequest(kind Kind, cmd SubCommand, arg any) (*Request, error) {
	b, err := cbor.Marshal(arg)
	if err != nil {
		return nil, fmt.Errorf("encode argument for %s/%s: %w", kind, cmd, err)
	}
	return &Request{Kind: kind, Cmd: cmd, Arg: b}, nil
}

// DecodeArg decodes the envelope's argument payload into v, which must
// be a pointer to the type agreed for this request's (kind, cmd) pair.
// A failure here means the bytes do not match the expected type; the
// dispatcher treats it as an invalid command for this request only.
func (r *Request) DecodeArg(v any) error {
	if err := cbor.Unmarshal(r.Arg, v); err != nil {
		return fmt.Errorf("fail to parse argument: %w", err)
	}
	return nil
}

// Result is the execution outcome written to the helper's standard
// output as JSON. Exactly one of OK and Err is set: OK holds the
// CBOR-encoded response body, Err one of the fixed protocol error
// codes.
type Result struct {
	OK  []byte  `json:"ok,omitempty"`
	Err *string `json:"err,omitempty"`
}

// OkResult wraps an already-serialized response body.
func OkResult(body []byte) Result {
	return Result{OK: body}
}

// ErrResult wraps a protocol error code.
func ErrResult(code string) Result {
	return Result{Err: &code}
}

// Failed reports whether the result carries an error code.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Decode unmarshals the success body into v. If the result is an
// error, the error code is returned as a plain error instead.
func (r *Result) Decode(v any) error {
	if r.Err != nil {
		return errors.New(*r.Err)
	}
	if err := cbor.Unmarshal(r.OK, v); err != nil {
		return fmt.Errorf("fail to parse response: %w", err)
	}
	return nil
}

// EncodeBody serializes a response body to CBOR. The dispatcher
// applies the protocol's length bound on the returned bytes.
func EncodeBody(v any) ([]byte, error) {
	return cbor.Marshal(v)
}
