package ntp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicers/roxy/internal/oscmd"
)

func newTestClient(t *testing.T, conf string) (*Client, *oscmd.FakeExecutor) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ntp.conf")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o644))
	exec := oscmd.NewFakeExecutor()
	return &Client{ConfPath: path, Exec: exec}, exec
}

func TestSetReplacesServerLines(t *testing.T) {
	c, exec := newTestClient(t, "driftfile /var/lib/ntp/ntp.drift\nserver old.example.com iburst\n")

	require.NoError(t, c.Set([]string{"time.bora.net", "time2.kriss.re.kr"}))

	data, err := os.ReadFile(c.ConfPath)
	require.NoError(t, err)
	assert.Equal(t,
		"driftfile /var/lib/ntp/ntp.drift\nserver time.bora.net iburst\nserver time2.kriss.re.kr iburst\n",
		string(data))
	assert.Equal(t, []string{"systemctl restart ntp"}, exec.Calls)
}

func TestSetEmptyListClearsServers(t *testing.T) {
	c, _ := newTestClient(t, "server a.example.com iburst\nserver b.example.com iburst\n")

	require.NoError(t, c.Set(nil))

	servers, err := c.Get()
	require.NoError(t, err)
	assert.Empty(t, servers)
}

func TestGetParsesServers(t *testing.T) {
	c, _ := newTestClient(t, "# comment\nserver time.bora.net iburst\nserver time2.kriss.re.kr iburst\npool 0.ubuntu.pool.ntp.org\n")

	servers, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"time.bora.net", "time2.kriss.re.kr"}, servers)
}

func TestGetIgnoresMalformedServerLines(t *testing.T) {
	c, _ := newTestClient(t, "server \nserver noiburst.example.com\n")

	servers, err := c.Get()
	require.NoError(t, err)
	assert.Empty(t, servers)
}

func TestIsActive(t *testing.T) {
	c, exec := newTestClient(t, "")
	exec.Outputs["systemctl is-active ntp"] = "active\n"
	assert.True(t, c.IsActive())

	exec.Outputs["systemctl is-active ntp"] = "inactive\n"
	assert.False(t, c.IsActive())
}

func TestEnableDisable(t *testing.T) {
	c, exec := newTestClient(t, "")
	require.NoError(t, c.Enable())
	require.NoError(t, c.Disable())
	assert.Equal(t, []string{"systemctl start ntp", "systemctl stop ntp"}, exec.Calls)
}
