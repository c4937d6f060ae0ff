//go:build !linux

package hwinfo

import (
	"errors"

	"github.com/aicers/roxy/protocol"
)

var errUnsupported = errors.New("hwinfo: machine stats are only available on linux")

func diskUsage(string) (protocol.DiskUsage, error) {
	return protocol.DiskUsage{}, errUnsupported
}

func uptime() (string, error) {
	return "", errUnsupported
}
