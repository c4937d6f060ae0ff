// Package roxyd holds the management daemon's file-backed settings.
package roxyd

import (
	"fmt"
	"net"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultLogPath is where the daemon logs when the settings file does
// not say otherwise.
const DefaultLogPath = "/opt/clumit/log/roxyd.log"

const (
	defaultBindAddress   = "0.0.0.0:0"
	defaultIdleTimeoutMs = 30000
)

// Config is the daemon's TOML settings file.
type Config struct {
	// ManagerAddress is the manager endpoint, "host:port".
	ManagerAddress string `toml:"manager_address"`
	// LogPath overrides the default log file.
	LogPath string `toml:"log_path"`

	Quic QuicConfig `toml:"quic"`
	Mtls MtlsConfig `toml:"mtls"`
}

// QuicConfig is the transport section.
type QuicConfig struct {
	// BindAddress is the local address to bind.
	BindAddress string `toml:"bind_address"`
	// IdleTimeoutMs is the connection idle timeout in milliseconds.
	IdleTimeoutMs uint64 `toml:"idle_timeout_ms"`
}

// MtlsConfig is the certificate section.
type MtlsConfig struct {
	CertPath   string `toml:"cert_path"`
	KeyPath    string `toml:"key_path"`
	CACertPath string `toml:"ca_cert_path"`
}

// Load reads and validates the settings file, filling defaults for
// the optional fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg := Config{
		LogPath: DefaultLogPath,
		Quic: QuicConfig{
			BindAddress:   defaultBindAddress,
			IdleTimeoutMs: defaultIdleTimeoutMs,
		},
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ManagerAddress == "" {
		return fmt.Errorf("manager_address is required")
	}
	if _, _, err := net.SplitHostPort(c.ManagerAddress); err != nil {
		return fmt.Errorf("manager_address %q: %w", c.ManagerAddress, err)
	}
	if _, _, err := net.SplitHostPort(c.Quic.BindAddress); err != nil {
		return fmt.Errorf("quic.bind_address %q: %w", c.Quic.BindAddress, err)
	}
	if c.Mtls.CertPath == "" || c.Mtls.KeyPath == "" || c.Mtls.CACertPath == "" {
		return fmt.Errorf("mtls cert_path, key_path, and ca_cert_path are required")
	}
	return nil
}
