// Package cli provides the command-line interface for evsd.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/evsd/internal/config"
)

// loadConfig builds a manager and loads the effective configuration. Every
// subcommand goes through here so file, environment, and defaults resolve
// the same way.
func loadConfig() (*config.Manager, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return manager, nil
}

// NewRootCmd creates the root command for evsd
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "evsd",
		Short: "Display arbitration daemon for exterior view cameras",
		Long: `evsd owns the exterior-view display target. It hands out render
buffers to a single client, presents returned frames through the
compositor proxy or a direct hardware layer, and revokes ownership
when a higher-priority client claims the display.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("evsd %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", buildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewJournalCmd())

	return rootCmd
}
