//go:build linux

package hwinfo

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/aicers/roxy/protocol"
)

func diskUsage(mount string) (protocol.DiskUsage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(mount, &st); err != nil {
		return protocol.DiskUsage{}, fmt.Errorf("statfs %s: %w", mount, err)
	}
	total := st.Blocks * uint64(st.Bsize)
	free := st.Bavail * uint64(st.Bsize)
	used := total - st.Bfree*uint64(st.Bsize)
	usage := protocol.DiskUsage{
		MountPoint: mount,
		TotalBytes: total,
		UsedBytes:  used,
	}
	// Ratio over the space available to unprivileged users, the way df
	// computes Use%.
	if denom := used + free; denom > 0 {
		usage.UsedRatio = float64(used) / float64(denom)
	}
	return usage, nil
}

func uptime() (string, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return "", fmt.Errorf("sysinfo: %w", err)
	}
	up := time.Duration(si.Uptime) * time.Second
	boot := time.Now().Add(-up)
	return fmt.Sprintf("up %s (boot: %s)", formatDuration(up), boot.Format("2006-01-02 15:04:05")), nil
}

func formatDuration(d time.Duration) string {
	minutes := int64(d.Minutes())
	weeks := minutes / (7 * 24 * 60)
	minutes -= weeks * 7 * 24 * 60
	days := minutes / (24 * 60)
	minutes -= days * 24 * 60
	hours := minutes / 60
	minutes -= hours * 60

	var parts []string
	if weeks > 0 {
		parts = append(parts, plural(weeks, "week"))
	}
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int64, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
