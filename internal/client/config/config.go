package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the QR Studio CLI.
//
// Fields:
//   - BaseURL: scheme://host:port of the backend REST API.
//   - RequestTimeout: per-request deadline for API calls.
//   - StateDir: directory where the session token and theme are persisted.
//   - DownloadsDir: directory where saved QR images are written.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	StateDir       string
	DownloadsDir   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 30 * time.Second

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.StateDir = filepath.Join(home, ".qrstudio")
	c.DownloadsDir = filepath.Join(home, "Downloads")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
