// Command roxyd is the management daemon entry point. It loads the
// TOML settings file, switches logging to the configured log file,
// records the host's state at startup, and waits for a termination
// signal. The remote-management transport attaches here once it
// lands; until then the daemon only validates its settings and runs.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aicers/roxy/internal/hwinfo"
	"github.com/aicers/roxy/internal/logging"
	"github.com/aicers/roxy/internal/roxyd"
)

func main() {
	configPath := flag.String("config", "", "path to the settings file (TOML)")
	flag.StringVar(configPath, "c", "", "path to the settings file (short)")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "usage: roxyd -c <config.toml>")
		os.Exit(2)
	}

	cfg, err := roxyd.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, closeLog, err := openLog(cfg.LogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	logging.SetDefault(log)

	log.Info("roxyd starting",
		"manager", cfg.ManagerAddress,
		"bind", cfg.Quic.BindAddress,
		"idle_timeout_ms", cfg.Quic.IdleTimeoutMs)

	info := hwinfo.New()
	if up, err := info.Uptime(); err == nil {
		log.Info("host state", "uptime", up)
	}
	if du, err := info.DiskUsage(); err == nil {
		log.Info("data volume",
			"mount", du.MountPoint,
			"used_bytes", du.UsedBytes,
			"total_bytes", du.TotalBytes,
			"used_ratio", fmt.Sprintf("%.2f", du.UsedRatio))
	} else {
		log.Warn("data volume unavailable", "error", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info("roxyd stopping", "signal", s.String())
}

// openLog appends to the configured log file. The daemon runs
// detached, so stderr is not a useful sink once it is up.
func openLog(path string) (*logging.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	log := logging.New(logging.Config{
		Level:  logging.LevelInfo,
		Output: f,
	})
	return log, func() { f.Close() }, nil
}
