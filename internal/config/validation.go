// Validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	if config.Display.Width == 0 || config.Display.Height == 0 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("display.width/height must be non-zero (got: %dx%d)", config.Display.Width, config.Display.Height))
	}
	if config.Display.BufferCount < 1 || config.Display.BufferCount > 8 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("display.buffer_count must be between 1 and 8 (got: %d)", config.Display.BufferCount))
	}

	switch config.Backend.Mode {
	case BackendProxy, BackendLayer:
		// Valid
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("backend.mode must be one of: proxy, layer (got: %s)", config.Backend.Mode))
	}

	if config.Backend.ServiceWait < 0 {
		validationErrors = append(validationErrors, "backend.service_wait must be non-negative")
	}

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
		// Valid
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}

	switch config.Logging.Format {
	case "json", "console":
		// Valid
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of: json, console (got: %s)", config.Logging.Format))
	}

	if config.HTTP.Enabled && config.HTTP.Listen == "" {
		validationErrors = append(validationErrors, "http.listen cannot be empty when http.enabled is set")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
