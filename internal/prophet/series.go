package prophet

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Series is a univariate daily series. NaN values are treated as missing.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// NewSeries creates a series with explicit timestamps.
func NewSeries(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{Timestamps: timestamps, Values: values}, nil
}

// Len returns the length of the series, missing values included.
func (s *Series) Len() int {
	return len(s.Values)
}

// observed returns the non-NaN points sorted by time.
func (s *Series) observed() ([]time.Time, []float64) {
	idx := make([]int, 0, len(s.Values))
	for i, v := range s.Values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.Timestamps[idx[a]].Before(s.Timestamps[idx[b]])
	})
	ts := make([]time.Time, len(idx))
	ys := make([]float64, len(idx))
	for i, j := range idx {
		ts[i] = s.Timestamps[j]
		ys[i] = s.Values[j]
	}
	return ts, ys
}

// uniqueDates returns every distinct timestamp of the series in ascending order,
// whether or not its value is missing.
func (s *Series) uniqueDates() []time.Time {
	seen := make(map[int64]bool, len(s.Timestamps))
	out := make([]time.Time, 0, len(s.Timestamps))
	for _, t := range s.Timestamps {
		k := t.UnixNano()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
