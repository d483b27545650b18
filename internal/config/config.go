// Package config provides configuration management for evsd with Viper integration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// BackendMode selects the presentation path. The choice is fixed for the
// lifetime of the service.
type BackendMode string

const (
	// BackendProxy renders through the compositor-proxy window surface.
	BackendProxy BackendMode = "proxy"
	// BackendLayer hands pool buffers directly to a hardware layer.
	BackendLayer BackendMode = "layer"
)

// Config represents the complete configuration for evsd.
type Config struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Journal JournalConfig `mapstructure:"journal" yaml:"journal"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
}

// DisplayConfig describes the display instance and its buffers.
type DisplayConfig struct {
	ID          string `mapstructure:"id" yaml:"id"`
	VendorFlags uint32 `mapstructure:"vendor_flags" yaml:"vendor_flags"`
	Width       uint32 `mapstructure:"width" yaml:"width"`
	Height      uint32 `mapstructure:"height" yaml:"height"`
	BufferCount int    `mapstructure:"buffer_count" yaml:"buffer_count"`
}

// BackendConfig selects and tunes the presentation backend.
type BackendConfig struct {
	Mode BackendMode `mapstructure:"mode" yaml:"mode"`
	// ProxyDisplayID is the 64-bit window id on the compositor proxy
	// (proxy mode only).
	ProxyDisplayID uint64 `mapstructure:"proxy_display_id" yaml:"proxy_display_id"`
	// ServiceWait bounds how long the layer backend polls for the
	// lower-level display service to come up (layer mode only).
	ServiceWait time.Duration `mapstructure:"service_wait" yaml:"service_wait"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// JournalConfig holds the lifecycle event journal configuration.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// HTTPConfig holds the local debug endpoint configuration.
type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Listen  string `mapstructure:"listen" yaml:"listen"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Supports yaml, json, toml automatically
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("EVSD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"display.id":               "DISPLAY_ID",
		"display.width":            "DISPLAY_WIDTH",
		"display.height":           "DISPLAY_HEIGHT",
		"display.buffer_count":     "DISPLAY_BUFFER_COUNT",
		"backend.mode":             "BACKEND_MODE",
		"backend.proxy_display_id": "BACKEND_PROXY_DISPLAY_ID",
		"backend.service_wait":     "BACKEND_SERVICE_WAIT",
		"logging.level":            "LOG_LEVEL",
		"logging.format":           "LOG_FORMAT",
		"journal.enabled":          "JOURNAL_ENABLED",
		"journal.path":             "JOURNAL_PATH",
		"http.enabled":             "HTTP_ENABLED",
		"http.listen":              "HTTP_LISTEN",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "EVSD_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create default one
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Journal.Path == "" {
		journalPath, err := GetJournalFile()
		if err != nil {
			return fmt.Errorf("failed to get journal path: %w", err)
		}
		config.Journal.Path = journalPath
	}

	config.Backend.Mode = BackendMode(strings.ToLower(string(config.Backend.Mode)))

	if err := validateConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnReload registers a callback invoked with the new configuration after a
// successful live reload.
func (m *Manager) OnReload(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch starts watching the config file for changes. The backend mode is
// fixed at construction; a reload only affects logging and the debug
// endpoint, which the callbacks handle.
func (m *Manager) Watch() {
	m.mu.Lock()
	if m.watching {
		m.mu.Unlock()
		return
	}
	m.watching = true
	m.mu.Unlock()

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		config := &Config{}
		if err := m.viper.Unmarshal(config); err != nil {
			return
		}
		if err := validateConfig(config); err != nil {
			return
		}

		m.mu.Lock()
		m.config = config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		for _, fn := range callbacks {
			fn(config)
		}
	})
}
