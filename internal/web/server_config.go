package web

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "OSDKIT_LISTEN"
	EnvDevMode    = "OSDKIT_DEV"
)

// ServerConfig holds the HTTP server settings. The device listens on :80
// and the simulator on :8080 unless overridden.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// ServerConfigFromEnv applies OSDKIT_LISTEN and OSDKIT_DEV on top of
// defaultListenAddr.
func ServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	cfg := ServerConfig{ListenAddr: defaultListenAddr}

	if addr := os.Getenv(EnvListenAddr); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be host:port (got %q): %w", EnvListenAddr, addr, err)
		}
		cfg.ListenAddr = addr
	}

	if raw := os.Getenv(EnvDevMode); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = dev
	}
	return cfg, nil
}
