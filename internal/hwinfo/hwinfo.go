// Package hwinfo reports host identity and basic machine facts: the
// OS/Product version file, data-partition usage, and uptime.
package hwinfo

import (
	"fmt"
	"os"
	"strings"

	"github.com/aicers/roxy/internal/linefile"
	"github.com/aicers/roxy/protocol"
)

const (
	// DefaultVersionPath is the Key: value identity file.
	DefaultVersionPath = "/etc/version"
	// DefaultDataMount is the partition whose usage is reported.
	DefaultDataMount = "/data"

	fallbackVersion = "AICE security"
)

// Info reads and rewrites host identity.
type Info struct {
	VersionPath string
	DataMount   string
}

// New returns an Info wired to the host defaults.
func New() *Info {
	return &Info{VersionPath: DefaultVersionPath, DataMount: DefaultDataMount}
}

// Versions returns the OS and Product versions from the identity
// file. A missing or unreadable file yields the fallback values, not
// an error.
func (i *Info) Versions() protocol.Versions {
	v := protocol.Versions{OS: fallbackVersion, Product: fallbackVersion}
	contents, err := os.ReadFile(i.VersionPath)
	if err != nil {
		return v
	}
	for _, line := range linefile.Split(string(contents)) {
		switch {
		case strings.HasPrefix(line, "OS:"):
			v.OS = strings.TrimSpace(line[len("OS:"):])
		case strings.HasPrefix(line, "Product:"):
			v.Product = strings.TrimSpace(line[len("Product:"):])
		}
	}
	return v
}

// SetVersion updates the OS or Product line: existing lines for the
// key are removed (case-insensitively) and the new line appended.
func (i *Info) SetVersion(cmd protocol.SubCommand, value string) error {
	var prefix, key string
	switch cmd {
	case protocol.CmdSetOsVersion:
		prefix, key = "os:", "OS"
	case protocol.CmdSetProductVersion:
		prefix, key = "product:", "Product"
	default:
		return fmt.Errorf("invalid version command %q", cmd)
	}

	return linefile.Rewrite(i.VersionPath, func(lines []string) []string {
		var out []string
		for _, line := range lines {
			if strings.HasPrefix(strings.ToLower(line), prefix) {
				continue
			}
			out = append(out, line)
		}
		return append(out, fmt.Sprintf("%s: %s", key, value))
	})
}

// DiskUsage reports usage of the data partition.
func (i *Info) DiskUsage() (protocol.DiskUsage, error) {
	return diskUsage(i.DataMount)
}

// Uptime reports how long the host has been running, with the boot
// time, e.g. "up 5 days, 13 hours, 52 minutes (boot: 2021-12-16 23:43:10)".
func (i *Info) Uptime() (string, error) {
	return uptime()
}
