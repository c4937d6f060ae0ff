//go:build linux

package hwinfo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 minutes"},
		{time.Minute, "1 minute"},
		{90 * time.Minute, "1 hour, 30 minutes"},
		{25 * time.Hour, "1 day, 1 hour"},
		{(7*24 + 24*5 + 13) * time.Hour, "1 week, 5 days, 13 hours"},
		{8*24*time.Hour + 20*time.Minute, "1 week, 1 day, 20 minutes"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatDuration(tc.d), tc.d)
	}
}

func TestDiskUsageOnRoot(t *testing.T) {
	usage, err := diskUsage("/")
	if err != nil {
		t.Skipf("statfs unavailable: %v", err)
	}
	assert.Equal(t, "/", usage.MountPoint)
	assert.Positive(t, usage.TotalBytes)
	assert.GreaterOrEqual(t, usage.UsedRatio, 0.0)
	assert.LessOrEqual(t, usage.UsedRatio, 1.0)
}
