package syslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicers/roxy/internal/oscmd"
	"github.com/aicers/roxy/protocol"
)

func newTestClient(t *testing.T, conf string) (*Client, *oscmd.FakeExecutor) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "50-default.conf")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o644))
	exec := oscmd.NewFakeExecutor()
	return &Client{ConfPath: path, Exec: exec}, exec
}

func TestSetAppendsForwardingLines(t *testing.T) {
	c, exec := newTestClient(t, "# default rules\nauth,authpriv.* /var/log/auth.log\n")

	require.NoError(t, c.Set([]string{"@@192.168.0.205:7500", "@192.168.1.71:500"}))

	data, err := os.ReadFile(c.ConfPath)
	require.NoError(t, err)
	assert.Equal(t,
		"# default rules\nauth,authpriv.* /var/log/auth.log\nuser.* @@192.168.0.205:7500\nuser.* @192.168.1.71:500\n",
		string(data))
	assert.Equal(t, []string{"systemctl restart rsyslog"}, exec.Calls)
}

func TestSetReplacesExistingForwarding(t *testing.T) {
	c, _ := newTestClient(t, "user.* @10.0.0.1:514\nauth.* /var/log/auth.log\n")

	require.NoError(t, c.Set([]string{"@@10.0.0.2:6514"}))

	servers, err := c.Get()
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, protocol.SyslogServer{Facility: "user.*", Proto: "tcp", Addr: "10.0.0.2:6514"}, servers[0])
}

func TestSetRejectsInvalidAddress(t *testing.T) {
	conf := "auth.* /var/log/auth.log\n"
	c, exec := newTestClient(t, conf)

	for _, addr := range []string{"@192.168.0.205", "@@noport", "@10.0.0.1:notaport"} {
		err := c.Set([]string{addr})
		require.Error(t, err, addr)
		assert.Contains(t, err.Error(), "invalid address")
	}

	// No write, no restart.
	data, err := os.ReadFile(c.ConfPath)
	require.NoError(t, err)
	assert.Equal(t, conf, string(data))
	assert.Empty(t, exec.Calls)
}

func TestInitClearsForwarding(t *testing.T) {
	c, _ := newTestClient(t, "user.* @@192.168.0.205:7500\nauth.* /var/log/auth.log\n")

	require.NoError(t, c.Init())

	servers, err := c.Get()
	require.NoError(t, err)
	assert.Empty(t, servers)

	data, err := os.ReadFile(c.ConfPath)
	require.NoError(t, err)
	assert.Equal(t, "auth.* /var/log/auth.log\n", string(data))
}

func TestGetParsesProtocols(t *testing.T) {
	c, _ := newTestClient(t, "# user.* @1.2.3.4:514\nuser.* @@192.168.0.205:7500\nuser.* @192.168.1.71:500\nmail.* /var/log/mail.log\n")

	servers, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, []protocol.SyslogServer{
		{Facility: "user.*", Proto: "tcp", Addr: "192.168.0.205:7500"},
		{Facility: "user.*", Proto: "udp", Addr: "192.168.1.71:500"},
	}, servers)
}

func TestGetEmptyWhenNoForwarding(t *testing.T) {
	c, _ := newTestClient(t, "auth.* /var/log/auth.log\n")

	servers, err := c.Get()
	require.NoError(t, err)
	assert.Nil(t, servers)
}

func TestStartRestartsUnit(t *testing.T) {
	c, exec := newTestClient(t, "")
	require.NoError(t, c.Start())
	assert.Equal(t, []string{"systemctl restart rsyslog"}, exec.Calls)
}
