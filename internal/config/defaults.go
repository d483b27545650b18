package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Reference display defaults, matching the hardware the service was
// brought up on.
const (
	DefaultDisplayWidth  = 1280
	DefaultDisplayHeight = 720
	DefaultBufferCount   = 3
	DefaultVendorFlags   = 3870

	DefaultServiceWait = 30 * time.Second
)

func (m *Manager) setDefaults() {
	m.viper.SetDefault("display.id", "evs hal Display")
	m.viper.SetDefault("display.vendor_flags", DefaultVendorFlags)
	m.viper.SetDefault("display.width", DefaultDisplayWidth)
	m.viper.SetDefault("display.height", DefaultDisplayHeight)
	m.viper.SetDefault("display.buffer_count", DefaultBufferCount)

	m.viper.SetDefault("backend.mode", string(BackendLayer))
	m.viper.SetDefault("backend.proxy_display_id", 0)
	m.viper.SetDefault("backend.service_wait", DefaultServiceWait)

	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.format", "console")

	m.viper.SetDefault("journal.enabled", true)
	m.viper.SetDefault("journal.path", "")

	m.viper.SetDefault("http.enabled", false)
	m.viper.SetDefault("http.listen", "127.0.0.1:7712")
}

// Default returns the built-in configuration without touching the
// filesystem. Used by tests and by the config init command.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ID:          "evs hal Display",
			VendorFlags: DefaultVendorFlags,
			Width:       DefaultDisplayWidth,
			Height:      DefaultDisplayHeight,
			BufferCount: DefaultBufferCount,
		},
		Backend: BackendConfig{
			Mode:        BackendLayer,
			ServiceWait: DefaultServiceWait,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		HTTP: HTTPConfig{
			Enabled: false,
			Listen:  "127.0.0.1:7712",
		},
	}
}

// createDefaultConfig writes a commented default config.yaml so the config
// directory is populated on first run.
func (m *Manager) createDefaultConfig() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	header := "# evsd configuration\n# See config.schema.json in this directory for the full schema.\n"
	if err := os.WriteFile(configFile, append([]byte(header), data...), filePerm); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	if err := GenerateSchemaFile(); err != nil {
		// Schema generation is best effort; the config itself was written.
		return nil
	}
	return nil
}
