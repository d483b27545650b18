package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bnema/evsd/internal/config"
	"github.com/bnema/evsd/internal/daemon"
	"github.com/bnema/evsd/internal/logging"
)

// NewRunCmd creates the command that starts the display daemon.
func NewRunCmd() *cobra.Command {
	var (
		backendMode string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the display daemon",
		Long: `Starts the daemon, binds the configured presentation backend, and
serves display requests until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := manager.Get()

			if backendMode != "" {
				cfg.Backend.Mode = config.BackendMode(backendMode)
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			log := logging.New(logging.Config{
				Level:  logging.ParseLevel(cfg.Logging.Level),
				Format: cfg.Logging.Format,
			})

			// Backend mode is fixed for the process lifetime; a live reload
			// only adjusts verbosity.
			manager.OnReload(func(next *config.Config) {
				zerolog.SetGlobalLevel(logging.ParseLevel(next.Logging.Level))
				log.Info().Str("level", next.Logging.Level).Msg("configuration reloaded")
			})
			manager.Watch()

			if err := daemon.Run(cmd.Context(), cfg, log, daemon.Options{}); err != nil {
				return fmt.Errorf("daemon exited with error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backendMode, "backend", "", "presentation backend (proxy or layer), overrides config")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error), overrides config")

	return cmd
}
