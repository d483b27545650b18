package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/evsd/internal/config"
)

// NewConfigCmd creates the config inspection command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(manager.Get())
			if err != nil {
				return fmt.Errorf("failed to marshal configuration: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to resolve config directory: %w", err)
			}
			cmd.Println(filepath.Join(configDir, "config.yaml"))
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file and schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to resolve config directory: %w", err)
			}
			cmd.Println("Configuration initialized at:", filepath.Join(configDir, "config.yaml"))
			return nil
		},
	}

	cmd.AddCommand(showCmd)
	cmd.AddCommand(pathCmd)
	cmd.AddCommand(initCmd)

	return cmd
}
