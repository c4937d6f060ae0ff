// Package protocol defines the command taxonomy and wire envelope shared
// between the unprivileged caller and the privileged roxy helper.
//
// A request names a resource kind, a subcommand, and carries an opaque
// CBOR-encoded argument whose concrete type is fixed by the (kind, cmd)
// pair. The pairing is a wire contract: changing the argument type for a
// kind is a breaking protocol change.
package protocol

// SubCommand is the generic verb applied to a resource kind. The verb
// vocabulary is shared across kinds; not every verb is valid for every
// kind, and validity is enforced by the dispatcher's handler table.
type SubCommand string

const (
	CmdAdd               SubCommand = "add"
	CmdDelete            SubCommand = "delete"
	CmdDisable           SubCommand = "disable"
	CmdEnable            SubCommand = "enable"
	CmdGet               SubCommand = "get"
	CmdInit              SubCommand = "init"
	CmdList              SubCommand = "list"
	CmdSet               SubCommand = "set"
	CmdSetOsVersion      SubCommand = "set_os_version"
	CmdSetProductVersion SubCommand = "set_product_version"
	CmdStatus            SubCommand = "status"
	CmdUpdate            SubCommand = "update"

	// CmdNone marks kinds that take no subcommand (power state changes).
	CmdNone SubCommand = ""
)

// Kind is the resource category a request targets.
type Kind string

const (
	KindHostname         Kind = "hostname"
	KindInterface        Kind = "interface"
	KindNtp              Kind = "ntp"
	KindSyslog           Kind = "syslog"
	KindSshd             Kind = "sshd"
	KindService          Kind = "service"
	KindUfw              Kind = "ufw"
	KindVersion          Kind = "version"
	KindPowerOff         Kind = "power_off"
	KindReboot           Kind = "reboot"
	KindGracefulReboot   Kind = "graceful_reboot"
	KindGracefulPowerOff Kind = "graceful_power_off"
)

// Protocol status and error codes. These are the only strings a caller
// will ever see in a Result's error position; descriptive detail stays
// in the privileged helper's log.
const (
	// Okay is the response body for mutating commands that succeed.
	Okay = "Ok"

	// ErrInvalidCommand is returned for an unknown kind, an
	// unsupported (kind, cmd) pair, or an argument that does not
	// decode as the type the pair requires.
	ErrInvalidCommand = "invalid command"

	// ErrFail is returned when a valid command's handler fails.
	ErrFail = "fail"

	// ErrMessageTooLong is returned when a serialized response body
	// exceeds the 32-bit length bound.
	ErrMessageTooLong = "message too long"

	// ErrEncodeResponse is returned when a response body cannot be
	// serialized at all.
	ErrEncodeResponse = "fail to serialize response message"
)
