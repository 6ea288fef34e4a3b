package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockcast/internal/recorder"
	"stockcast/internal/report"
)

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs from the SQLite journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Database.SQLitePath == "" {
				return fmt.Errorf("database.sqlite_path is not configured")
			}
			rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer rec.Close()

			runs, err := rec.RecentRuns(limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatRecentRuns(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}
