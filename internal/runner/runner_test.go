package runner

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcast/internal/model"
	"stockcast/internal/recorder"
	"stockcast/internal/table"
)

var start = time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

// writeHistory writes n daily rows of synthetic prices and returns the path.
func writeHistory(t *testing.T, n int, header []string) string {
	t.Helper()
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return writeRows(t, dates, header)
}

// writeWeekdayHistory writes n Monday-to-Friday rows, like exchange data.
func writeWeekdayHistory(t *testing.T, n int) string {
	t.Helper()
	dates := make([]time.Time, 0, n)
	for d := start; len(dates) < n; d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			dates = append(dates, d)
		}
	}
	return writeRows(t, dates, fullHeader)
}

func writeRows(t *testing.T, dates []time.Time, header []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stock.csv")
	records := make([][]string, len(dates))
	for i, d := range dates {
		base := 100 + 0.3*float64(i) + 2*math.Sin(float64(i)/4)
		vals := map[string]string{
			model.ColumnDate:     d.Format("2006-01-02"),
			model.ColumnOpen:     fmt.Sprintf("%.2f", base),
			model.ColumnHigh:     fmt.Sprintf("%.2f", base+1.5),
			model.ColumnLow:      fmt.Sprintf("%.2f", base-1.5),
			model.ColumnClose:    fmt.Sprintf("%.2f", base+0.4),
			model.ColumnAdjClose: fmt.Sprintf("%.2f", base+0.3),
			model.ColumnVolume:   fmt.Sprintf("%d", 100000+(i%9)*2500),
		}
		rec := make([]string, len(header))
		for j, h := range header {
			rec[j] = vals[h]
		}
		records[i] = rec
	}
	require.NoError(t, table.Write(path, header, records))
	return path
}

var fullHeader = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputPath = filepath.Join(dir, "predictions.csv")
	opts.CopyPath = filepath.Join(dir, "stock-price-copy.csv")
	return opts
}

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRun_WritesHistoryAndForecast(t *testing.T) {
	input := writeHistory(t, 60, fullHeader)
	opts := testOptions(t)

	summary, err := New(opts, nil).Run(context.Background(), input, 2)
	require.NoError(t, err)
	assert.Equal(t, 60, summary.InputRows)
	assert.Equal(t, 60, summary.ForecastRows)
	assert.Zero(t, summary.DroppedDates)
	assert.Len(t, summary.Columns, 6)
	assert.NotEmpty(t, summary.RunID)

	out := readRecords(t, opts.OutputPath)
	in := readRecords(t, input)
	require.Len(t, out, 1+60+60)
	assert.Equal(t, in, out[:61])

	last := start.AddDate(0, 0, 59)
	for i, rec := range out[61:] {
		d, err := table.ParseDate(rec[0])
		require.NoError(t, err)
		assert.True(t, d.After(last), "row %d date %s", i, rec[0])
		assert.Equal(t, last.AddDate(0, 0, i+1), d)

		for j, cell := range rec[1:] {
			col := fullHeader[j+1]
			require.NotEmpty(t, cell, "%s row %d", col, i)
			if col == model.ColumnVolume {
				assert.NotContains(t, cell, ".", "volume must be integral")
				continue
			}
			if k := strings.IndexByte(cell, '.'); k >= 0 {
				assert.LessOrEqual(t, len(cell)-k-1, 6, "%s has more than 6 decimals", cell)
			}
		}
	}

	copied, err := os.ReadFile(opts.CopyPath)
	require.NoError(t, err)
	original, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, original, copied)
}

func TestRun_WeekdayHistory(t *testing.T) {
	input := writeWeekdayHistory(t, 250)
	opts := testOptions(t)
	opts.Columns = []string{model.ColumnClose}

	_, err := New(opts, nil).Run(context.Background(), input, 3)
	require.NoError(t, err)

	out := readRecords(t, opts.OutputPath)
	require.Len(t, out, 1+250+90)
	lastClose, err := strconv.ParseFloat(out[250][4], 64)
	require.NoError(t, err)
	for i, rec := range out[251:] {
		v, err := strconv.ParseFloat(rec[4], 64)
		require.NoError(t, err)
		if i == 0 {
			assert.InEpsilon(t, lastClose, v, 0.03, "first forecast %s", rec[0])
		}
		assert.Greater(t, v, lastClose/2, "%s", rec[0])
	}
}

func TestRun_ZeroMonthsReproducesInput(t *testing.T) {
	input := writeHistory(t, 30, fullHeader)
	opts := testOptions(t)

	summary, err := New(opts, nil).Run(context.Background(), input, 0)
	require.NoError(t, err)
	assert.Zero(t, summary.ForecastRows)

	got, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	want, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRun_Deterministic(t *testing.T) {
	input := writeHistory(t, 45, fullHeader)
	opts := testOptions(t)

	_, err := New(opts, nil).Run(context.Background(), input, 1)
	require.NoError(t, err)
	first, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)

	opts.Parallel = true
	_, err = New(opts, nil).Run(context.Background(), input, 1)
	require.NoError(t, err)
	second, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRun_MissingColumn(t *testing.T) {
	input := writeHistory(t, 20, []string{"Date", "Open", "High", "Low", "Close", "Adj Close"})
	opts := testOptions(t)

	_, err := New(opts, nil).Run(context.Background(), input, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrMissingColumn), "got %v", err)
	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_InputErrors(t *testing.T) {
	opts := testOptions(t)
	r := New(opts, nil)

	_, err := r.Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), 1)
	assert.Error(t, err)

	_, err = r.Run(context.Background(), writeHistory(t, 10, fullHeader), -1)
	assert.ErrorIs(t, err, ErrNegativeHorizon)

	_, err = r.Run(context.Background(), writeHistory(t, 1, fullHeader), 1)
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testOptions(t), nil).Run(ctx, writeHistory(t, 20, fullHeader), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SubsetOfColumns(t *testing.T) {
	input := writeHistory(t, 40, fullHeader)
	opts := testOptions(t)
	opts.Columns = []string{model.ColumnClose}
	opts.XLSXPath = filepath.Join(t.TempDir(), "predictions.xlsx")

	_, err := New(opts, nil).Run(context.Background(), input, 1)
	require.NoError(t, err)

	out := readRecords(t, opts.OutputPath)
	require.Len(t, out, 1+40+30)
	row := out[len(out)-1]
	assert.NotEmpty(t, row[4])
	assert.Empty(t, row[1])
	assert.Empty(t, row[6])

	_, err = os.Stat(opts.XLSXPath)
	assert.NoError(t, err)
}

type memRecorder struct {
	recorder.NoopRecorder
	runs []*recorder.RunRecord
	fits []*recorder.ColumnFitRecord
}

func (m *memRecorder) RecordRun(r *recorder.RunRecord) error {
	m.runs = append(m.runs, r)
	return nil
}

func (m *memRecorder) RecordColumnFit(f *recorder.ColumnFitRecord) error {
	m.fits = append(m.fits, f)
	return nil
}

func TestRun_Journals(t *testing.T) {
	rec := &memRecorder{}
	summary, err := New(testOptions(t), rec).Run(context.Background(), writeHistory(t, 30, fullHeader), 1)
	require.NoError(t, err)

	require.Len(t, rec.runs, 1)
	assert.Equal(t, summary.RunID, rec.runs[0].RunID)
	assert.Equal(t, 30, rec.runs[0].ForecastRows)
	require.Len(t, rec.fits, 6)
	assert.Equal(t, model.ColumnOpen, rec.fits[0].Column)
	assert.Equal(t, model.ColumnVolume, rec.fits[5].Column)
}

func TestForecastColumn_CutoffIncludesMissingRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("Date,Close\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "%s,%.2f\n", start.AddDate(0, 0, i).Format("2006-01-02"), 50+0.5*float64(i))
	}
	last := start.AddDate(0, 0, 20)
	fmt.Fprintf(&b, "%s,\n", last.Format("2006-01-02"))

	tbl, err := table.ReadFrom(strings.NewReader(b.String()))
	require.NoError(t, err)

	frame, fit, err := ForecastColumn(tbl, model.ColumnClose, 5, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 20, fit.TrainRows)
	require.Len(t, frame.Points, 5)
	assert.Equal(t, last.AddDate(0, 0, 1), frame.Points[0].Date)
}
