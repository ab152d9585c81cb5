package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfig is a DTO used exclusively for environment lookup.
type EnvConfig struct {
	BaseURL        string        `env:"QRSTUDIO_BASE_URL"`
	RequestTimeout time.Duration `env:"QRSTUDIO_TIMEOUT"`
	StateDir       string        `env:"QRSTUDIO_STATE_DIR"`
	DownloadsDir   string        `env:"QRSTUDIO_DOWNLOADS_DIR"`
}

// parseEnv overlays Config with values from environment variables. Unset
// variables leave the corresponding field untouched. Panics on malformed
// values (e.g. an unparseable QRSTUDIO_TIMEOUT).
func parseEnv(cfg *Config) {
	var ec EnvConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}

	if ec.BaseURL != "" {
		cfg.BaseURL = ec.BaseURL
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.StateDir != "" {
		cfg.StateDir = ec.StateDir
	}
	if ec.DownloadsDir != "" {
		cfg.DownloadsDir = ec.DownloadsDir
	}
}
