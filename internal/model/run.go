package model

import "time"

// ColumnFit summarizes how a single column's model was fitted.
type ColumnFit struct {
	Column       string
	TrainRows    int
	Changepoints int
	ResidualStd  float64 // in original units
	FutureRows   int
	Duration     time.Duration
}

// RunSummary describes one completed forecast run.
type RunSummary struct {
	RunID        string
	InputPath    string
	OutputPath   string
	CopyPath     string
	Months       int
	InputRows    int
	ForecastRows int
	DroppedDates int
	Columns      []ColumnFit
	StartedAt    time.Time
	Duration     time.Duration
}

// TableStats is a quick description of a price history.
type TableStats struct {
	Rows      int
	Columns   []string
	First     time.Time
	Last      time.Time
	LastClose float64
	SMA20     float64 // NaN when history is shorter than 20 rows
	SMA200    float64 // NaN when history is shorter than 200 rows
	High52w   float64
	Low52w    float64
}
