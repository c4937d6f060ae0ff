//go:build !linux

package ifconfig

import "errors"

var errUnsupported = errors.New("netlink is only available on linux")

type stubNetlinker struct{}

// DefaultNetlinker returns the platform Netlinker. On non-linux
// platforms every operation fails; the engine's document logic is
// still fully usable with an injected fake.
func DefaultNetlinker() Netlinker {
	return &stubNetlinker{}
}

func (s *stubNetlinker) LinkNames() ([]string, error)   { return nil, errUnsupported }
func (s *stubNetlinker) LinkSetUp(string) error         { return errUnsupported }
func (s *stubNetlinker) AddrFlush4(string) error        { return errUnsupported }
func (s *stubNetlinker) AddrDel(string, string) error   { return errUnsupported }
