package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("QRSTUDIO_BASE_URL", "http://env:7000")
	t.Setenv("QRSTUDIO_TIMEOUT", "12s")

	cfg := &Config{}
	cfg.LoadDefaults()
	origState := cfg.StateDir

	parseEnv(cfg)

	assert.Equal(t, "http://env:7000", cfg.BaseURL)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
	assert.Equal(t, origState, cfg.StateDir)
}

func TestParseEnv_UnsetLeavesDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg

	parseEnv(cfg)

	assert.Equal(t, before, *cfg)
}
