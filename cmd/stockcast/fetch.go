package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"stockcast/internal/collector"
	"stockcast/internal/config"
)

func fetchCmd() *cobra.Command {
	var rng string
	cmd := &cobra.Command{
		Use:   "fetch [symbol] <out.csv>",
		Short: "Download daily history from Yahoo Finance as a forecast input CSV",
		Long: `Downloads daily bars for symbol and writes them as Date, Open, High, Low, Close,
Adj Close, Volume. With only <out.csv>, the symbol comes from data_source.symbol.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			symbol, out, err := fetchTarget(args, cfg)
			if err != nil {
				return err
			}
			if rng == "" {
				rng = cfg.DataSource.Range
			}

			fetcher := collector.NewYahooFetcher(cfg.Proxy)
			log.Printf("[INFO] data source: %s", fetcher.Name())
			bars, err := fetcher.FetchDailyHistory(cmd.Context(), symbol, rng)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", symbol, err)
			}
			if err := collector.WriteHistory(out, bars); err != nil {
				return fmt.Errorf("write history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bars for %s to %s\n", len(bars), symbol, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&rng, "range", "", "History range (1y, 5y, max); defaults to data_source.range")
	return cmd
}

// fetchTarget resolves the symbol and output path from the arguments, falling
// back to the configured symbol when only the path is given.
func fetchTarget(args []string, cfg *config.Config) (symbol, out string, err error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	if cfg.DataSource.Symbol == "" {
		return "", "", errors.New("no symbol given and data_source.symbol is not set")
	}
	return cfg.DataSource.Symbol, args[0], nil
}
