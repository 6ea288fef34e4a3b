package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"stockcast/internal/report"
	"stockcast/internal/runner"
	"stockcast/internal/scheduler"
)

func watchCmd() *cobra.Command {
	var spec string
	cmd := &cobra.Command{
		Use:   "watch <path_to_csv> <months>",
		Short: "Re-run one forecast on a cron schedule until interrupted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			months, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid months %q: %w", args[1], err)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if spec == "" {
				spec = cfg.Schedule.Cron
			}

			rec := openRecorder(cfg)
			defer rec.Close()
			opts := runner.OptionsFromConfig(cfg)
			opts.Verbose = verbose
			r := runner.New(opts, rec)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			job := func(ctx context.Context) error {
				summary, err := r.Run(ctx, args[0], months)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report.FormatRunSummary(summary))
				return nil
			}

			sched := scheduler.NewScheduler(ctx)
			if err := sched.Register(spec, "forecast", job); err != nil {
				return err
			}
			if cfg.Schedule.RunOnStart {
				log.Println("[INFO] run_on_start enabled, executing forecast now")
				sched.RunNow("forecast", job)
			}
			sched.Start()
			log.Println("[INFO] stockcast is watching. Press Ctrl+C to stop.")

			<-ctx.Done()
			log.Println("[INFO] shutdown signal received, stopping...")
			sched.Stop()
			runs, failures := sched.Stats()
			log.Printf("[INFO] watch stopped after %d runs (%d failed)", runs, failures)
			return nil
		},
	}
	cmd.Flags().StringVar(&spec, "cron", "", "6-field cron spec (with seconds); defaults to schedule.cron")
	return cmd
}
