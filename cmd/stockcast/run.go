package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stockcast/internal/report"
	"stockcast/internal/runner"
)

const runUsage = "Usage: stockcast run <path_to_csv> <months>"

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <path_to_csv> <months>",
		Short: "Forecast every price column months*30 days ahead",
		Long: `Loads the CSV, copies it to output.copy_path, fits one model per target column,
keeps smoothed future-only predictions, joins them on Date, and writes history
plus forecast rows to output.path.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintln(cmd.OutOrStdout(), runUsage)
				return nil
			}
			months, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid months %q: %w", args[1], err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rec := openRecorder(cfg)
			defer rec.Close()

			opts := runner.OptionsFromConfig(cfg)
			opts.Verbose = verbose
			summary, err := runner.New(opts, rec).Run(cmd.Context(), args[0], months)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatRunSummary(summary))
			return nil
		},
	}
}
