// Package runner turns a price history CSV into a history-plus-forecast CSV.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"stockcast/internal/model"
	"stockcast/internal/recorder"
	"stockcast/internal/table"
)

// ErrNegativeHorizon is returned for a negative month count.
var ErrNegativeHorizon = errors.New("months must not be negative")

// Runner executes forecast runs and journals them.
type Runner struct {
	Opts     Options
	Recorder recorder.Recorder
}

// New creates a Runner. A nil recorder disables journaling.
func New(opts Options, rec recorder.Recorder) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Runner{Opts: opts, Recorder: rec}
}

// Run loads inputPath, forecasts every configured column months*DaysPerMonth
// days ahead, and writes the combined table to the configured output path.
func (r *Runner) Run(ctx context.Context, inputPath string, months int) (*model.RunSummary, error) {
	if months < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeHorizon, months)
	}
	started := time.Now()
	summary := &model.RunSummary{
		RunID:      uuid.NewString(),
		InputPath:  inputPath,
		OutputPath: r.Opts.OutputPath,
		CopyPath:   r.Opts.CopyPath,
		Months:     months,
		StartedAt:  started,
	}

	tbl, err := table.Read(inputPath)
	if err != nil {
		return nil, err
	}
	summary.InputRows = tbl.Len()
	log.Printf("[INFO] loaded %d rows from %s", tbl.Len(), inputPath)

	if err := table.CopyFile(inputPath, r.Opts.CopyPath); err != nil {
		return nil, err
	}

	horizon := months * r.Opts.DaysPerMonth
	frames, fits, err := r.forecastAll(ctx, tbl, horizon)
	if err != nil {
		return nil, err
	}
	summary.Columns = fits

	fc, dropped := JoinFrames(frames)
	summary.ForecastRows = fc.Len()
	summary.DroppedDates = dropped
	if dropped > 0 {
		log.Printf("[WARN] %d forecast dates were not produced by every column and were dropped", dropped)
	}

	records := Assemble(tbl, fc)
	if err := table.Write(r.Opts.OutputPath, tbl.Header, records); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	if r.Opts.XLSXPath != "" {
		if err := table.WriteXLSX(r.Opts.XLSXPath, tbl.Header, records); err != nil {
			return nil, fmt.Errorf("write workbook: %w", err)
		}
	}
	summary.Duration = time.Since(started)
	log.Printf("[INFO] wrote %d rows (%d forecast) to %s", len(records), fc.Len(), r.Opts.OutputPath)

	r.journal(summary)
	return summary, nil
}

// forecastAll fits every configured column, serially or concurrently. Results
// are indexed by column so both paths produce the same order.
func (r *Runner) forecastAll(ctx context.Context, tbl *model.PriceTable, horizon int) ([]*model.Frame, []model.ColumnFit, error) {
	cols := r.Opts.Columns
	frames := make([]*model.Frame, len(cols))
	fits := make([]model.ColumnFit, len(cols))

	one := func(i int) error {
		frame, fit, err := ForecastColumn(tbl, cols[i], horizon, r.Opts)
		if err != nil {
			return err
		}
		frames[i] = frame
		fits[i] = fit
		if r.Opts.Verbose {
			log.Printf("[INFO] %s: %d train rows, %d changepoints, residual std %.6g, %d future rows in %v",
				fit.Column, fit.TrainRows, fit.Changepoints, fit.ResidualStd, fit.FutureRows, fit.Duration)
		}
		return nil
	}

	if !r.Opts.Parallel {
		for i := range cols {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			if err := one(i); err != nil {
				return nil, nil, err
			}
		}
		return frames, fits, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range cols {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return one(i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return frames, fits, nil
}

func (r *Runner) journal(s *model.RunSummary) {
	if err := r.Recorder.RecordRun(&recorder.RunRecord{
		RunID:        s.RunID,
		StartedAt:    s.StartedAt,
		InputPath:    s.InputPath,
		OutputPath:   s.OutputPath,
		Months:       s.Months,
		InputRows:    s.InputRows,
		ForecastRows: s.ForecastRows,
		DroppedDates: s.DroppedDates,
		Duration:     s.Duration,
	}); err != nil {
		log.Printf("[WARN] record run: %v", err)
		return
	}
	for _, f := range s.Columns {
		if err := r.Recorder.RecordColumnFit(&recorder.ColumnFitRecord{
			RunID:        s.RunID,
			Column:       f.Column,
			TrainRows:    f.TrainRows,
			Changepoints: f.Changepoints,
			ResidualStd:  f.ResidualStd,
			FutureRows:   f.FutureRows,
			Duration:     f.Duration,
		}); err != nil {
			log.Printf("[WARN] record column fit: %v", err)
		}
	}
}
