package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockcast/internal/report"
	"stockcast/internal/runner"
	"stockcast/internal/table"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path_to_csv>",
		Short: "Summarize a price history CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := table.Read(args[0])
			if err != nil {
				return err
			}
			st, err := runner.Inspect(tbl)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatTableStats(args[0], st))
			return nil
		},
	}
}
