package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level configuration read from the environment.
// User-facing preferences live in Settings instead.
type Env struct {
	LogLevel string `env:"YTDLP_GUI_LOG_LEVEL" envDefault:"info"`

	// YTDLPPath points at a yt-dlp binary; empty lets the installer resolve one
	YTDLPPath   string `env:"YTDLP_GUI_YTDLP_PATH"    envDefault:""`
	AutoInstall bool   `env:"YTDLP_GUI_AUTO_INSTALL"  envDefault:"true"`

	ProgressInterval time.Duration `env:"YTDLP_GUI_PROGRESS_INTERVAL" envDefault:"250ms"`
	ProgressBuffer   int           `env:"YTDLP_GUI_PROGRESS_BUFFER"   envDefault:"64"`
}

// ParseEnv loads Env from the process environment
func ParseEnv() (*Env, error) {
	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (e *Env) validate() error {
	if e.ProgressInterval <= 0 {
		return fmt.Errorf("progress interval must be positive, got %s", e.ProgressInterval)
	}
	if e.ProgressBuffer <= 0 {
		return fmt.Errorf("progress buffer must be positive, got %d", e.ProgressBuffer)
	}
	return nil
}
