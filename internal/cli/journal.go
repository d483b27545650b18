package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/evsd/internal/journal"
	"github.com/bnema/evsd/internal/logging"
)

// NewJournalCmd creates the command that reads the display event journal.
func NewJournalCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent display lifecycle events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := manager.Get()
			if !cfg.Journal.Enabled {
				return fmt.Errorf("journal is disabled in configuration")
			}

			jnl, err := journal.Open(cfg.Journal.Path, logging.NewFromEnv())
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer func() { _ = jnl.Close() }()

			events, err := jnl.Tail(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}
			if len(events) == 0 {
				cmd.Println("no events recorded")
				return nil
			}
			for _, ev := range events {
				if ev.Detail != "" {
					cmd.Printf("%s  %-24s %s\n", ev.Time.Format("2006-01-02 15:04:05"), ev.Kind, ev.Detail)
				} else {
					cmd.Printf("%s  %s\n", ev.Time.Format("2006-01-02 15:04:05"), ev.Kind)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events to show, newest first")

	return cmd
}
