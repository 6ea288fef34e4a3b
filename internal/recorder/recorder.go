package recorder

import "time"

// RunRecord is one completed forecast run.
type RunRecord struct {
	RunID        string
	StartedAt    time.Time
	InputPath    string
	OutputPath   string
	Months       int
	InputRows    int
	ForecastRows int
	DroppedDates int
	Duration     time.Duration
}

// ColumnFitRecord holds fit statistics for one column of a run.
type ColumnFitRecord struct {
	RunID        string
	Column       string
	TrainRows    int
	Changepoints int
	ResidualStd  float64
	FutureRows   int
	Duration     time.Duration
}

// Recorder journals forecast runs for later review.
type Recorder interface {
	RecordRun(run *RunRecord) error
	RecordColumnFit(fit *ColumnFitRecord) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
