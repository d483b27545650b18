package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, uint32(1280), cfg.Display.Width)
	assert.Equal(t, uint32(720), cfg.Display.Height)
	assert.Equal(t, 3, cfg.Display.BufferCount)
	assert.Equal(t, uint32(3870), cfg.Display.VendorFlags)
	assert.Equal(t, BackendLayer, cfg.Backend.Mode)
	assert.Equal(t, 30*time.Second, cfg.Backend.ServiceWait)
	assert.True(t, cfg.Journal.Enabled)
	assert.False(t, cfg.HTTP.Enabled)
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, validateConfig(Default()))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero width",
			mutate:  func(c *Config) { c.Display.Width = 0 },
			wantErr: "display.width",
		},
		{
			name:    "buffer count too small",
			mutate:  func(c *Config) { c.Display.BufferCount = 0 },
			wantErr: "display.buffer_count",
		},
		{
			name:    "buffer count too large",
			mutate:  func(c *Config) { c.Display.BufferCount = 9 },
			wantErr: "display.buffer_count",
		},
		{
			name:    "unknown backend mode",
			mutate:  func(c *Config) { c.Backend.Mode = "virtual" },
			wantErr: "backend.mode",
		},
		{
			name:    "negative service wait",
			mutate:  func(c *Config) { c.Backend.ServiceWait = -time.Second },
			wantErr: "backend.service_wait",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name: "http enabled without listen",
			mutate: func(c *Config) {
				c.HTTP.Enabled = true
				c.HTTP.Listen = ""
			},
			wantErr: "http.listen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("EVSD_BACKEND_MODE", "proxy")
	t.Setenv("EVSD_DISPLAY_BUFFER_COUNT", "2")

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, BackendProxy, cfg.Backend.Mode)
	assert.Equal(t, 2, cfg.Display.BufferCount)
	assert.NotEmpty(t, cfg.Journal.Path, "journal path falls back to the state dir")
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	assert.FileExists(t, configHome+"/evsd/config.yaml")
}
