// Package report renders run and table summaries for the terminal.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"stockcast/internal/model"
	"stockcast/internal/recorder"
)

// FormatRunSummary formats a completed forecast run.
func FormatRunSummary(s *model.RunSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Forecast run %s | %s\n\n", s.RunID, s.StartedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Input:    %s (%d rows)\n", s.InputPath, s.InputRows))
	b.WriteString(fmt.Sprintf("Copy:     %s\n", s.CopyPath))
	b.WriteString(fmt.Sprintf("Output:   %s\n", s.OutputPath))
	b.WriteString(fmt.Sprintf("Horizon:  %d months\n", s.Months))
	b.WriteString(fmt.Sprintf("Forecast: %d rows", s.ForecastRows))
	if s.DroppedDates > 0 {
		b.WriteString(fmt.Sprintf(" (%d dates dropped by join)", s.DroppedDates))
	}
	b.WriteString("\n\n")

	if len(s.Columns) > 0 {
		b.WriteString("Column fits:\n")
		for _, c := range s.Columns {
			b.WriteString(fmt.Sprintf("  %-10s train=%d changepoints=%d resid_std=%.6g\n",
				c.Column, c.TrainRows, c.Changepoints, c.ResidualStd))
		}
	}
	b.WriteString(fmt.Sprintf("\nFinished in %v\n", s.Duration.Round(time.Millisecond)))
	return b.String()
}

// FormatTableStats formats an inspect summary.
func FormatTableStats(path string, st *model.TableStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n\n", path))
	b.WriteString(fmt.Sprintf("Rows:       %d\n", st.Rows))
	b.WriteString(fmt.Sprintf("Columns:    %s\n", strings.Join(st.Columns, ", ")))
	if st.Rows > 0 {
		b.WriteString(fmt.Sprintf("Range:      %s .. %s\n", st.First.Format("2006-01-02"), st.Last.Format("2006-01-02")))
	}
	b.WriteString(fmt.Sprintf("Last close: %s\n", num(st.LastClose)))
	b.WriteString(fmt.Sprintf("SMA20:      %s | SMA200: %s\n", num(st.SMA20), num(st.SMA200)))
	b.WriteString(fmt.Sprintf("52w high:   %s | 52w low: %s\n", num(st.High52w), num(st.Low52w)))
	return b.String()
}

// FormatRecentRuns formats journal entries, newest first.
func FormatRecentRuns(runs []recorder.RunRecord) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("%s  %s  %s  months=%d rows=%d+%d dropped=%d\n",
			r.StartedAt.Format("2006-01-02 15:04"), shortID(r.RunID), r.InputPath,
			r.Months, r.InputRows, r.ForecastRows, r.DroppedDates))
	}
	return b.String()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
