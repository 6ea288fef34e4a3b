package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunRecord) error             { return nil }
func (n *NoopRecorder) RecordColumnFit(_ *ColumnFitRecord) error { return nil }
func (n *NoopRecorder) RecentRuns(_ int) ([]RunRecord, error)    { return nil, nil }
func (n *NoopRecorder) Close() error                             { return nil }
