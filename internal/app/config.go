package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rook-computer/osdkit/internal/osd"
)

const (
	EnvOSD         = "OSDKIT_OSD"
	EnvOSDDuration = "OSDKIT_OSD_DURATION"
)

// ConfigFromEnv returns the OSD configuration with environment overrides
// applied on top of osd.DefaultConfig.
func ConfigFromEnv() (osd.Config, error) {
	cfg := osd.DefaultConfig()

	if raw := os.Getenv(EnvOSD); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return osd.Config{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvOSD, raw, err)
		}
		cfg.Enabled = parsed
	}

	if raw := os.Getenv(EnvOSDDuration); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return osd.Config{}, fmt.Errorf("%s must be a duration (got %q): %w", EnvOSDDuration, raw, err)
		}
		if parsed <= 0 {
			return osd.Config{}, fmt.Errorf("%s must be positive (got %q)", EnvOSDDuration, raw)
		}
		cfg.Duration = parsed
	}

	return cfg, nil
}
