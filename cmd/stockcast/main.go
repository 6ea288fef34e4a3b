package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"stockcast/internal/config"
	"stockcast/internal/recorder"
)

var (
	configPath string
	verbose    bool
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stockcast",
		Short: "Forecast stock price history with an additive seasonal model",
		Long: `stockcast reads a CSV of daily prices (Date, Open, High, Low, Close, Adj Close, Volume),
fits one additive trend + seasonality model per column, and writes the history
followed by the predicted rows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log per-column fit details")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(historyCmd())
	return rootCmd
}

// loadConfig reads and validates the config selected by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// openRecorder returns the SQLite journal when configured, falling back to a
// no-op recorder if it cannot be opened.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
