package collector

import (
	"context"

	"stockcast/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyHistory(ctx context.Context, symbol, rng string) ([]model.Bar, error)
	Name() string
}
