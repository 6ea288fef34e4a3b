package prophet

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

func dailySeries(n int, f func(i int) float64) *Series {
	ts := make([]time.Time, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		ts[i] = day0.AddDate(0, 0, i)
		ys[i] = f(i)
	}
	s, _ := NewSeries(ts, ys)
	return s
}

func trendOnlyConfig() Config {
	cfg := DefaultConfig()
	cfg.YearlySeasonality = SeasonalityOff
	cfg.WeeklySeasonality = SeasonalityOff
	return cfg
}

func TestFit_LinearExtrapolation(t *testing.T) {
	line := func(i int) float64 { return 10 + 0.5*float64(i) }
	m := New(trendOnlyConfig())
	require.NoError(t, m.Fit(dailySeries(200, line)))

	future := m.MakeFuture(30)
	require.Len(t, future, 230)

	pred, err := m.Predict(future)
	require.NoError(t, err)
	for i := range future {
		assert.InDelta(t, line(i), pred.Yhat[i], 0.05, "day %d", i)
	}
	// noiseless input sits on the noise floor
	assert.InDelta(t, 0.01*109.5, m.ResidualStd(), 1e-9)
}

func TestFit_WeeklySeasonality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YearlySeasonality = SeasonalityOff
	cfg.WeeklySeasonality = SeasonalityOn

	s := dailySeries(120, func(i int) float64 { return 0 })
	for i, d := range s.Timestamps {
		s.Values[i] = 50 + 5*math.Sin(2*math.Pi*epochDays(d)/7)
	}

	m := New(cfg)
	require.NoError(t, m.Fit(s))
	require.Len(t, m.Seasonalities, 1)
	assert.Equal(t, "weekly", m.Seasonalities[0].Name)

	pred, err := m.Predict(s.Timestamps)
	require.NoError(t, err)
	mae := 0.0
	for i, v := range s.Values {
		mae += math.Abs(v - pred.Yhat[i])
	}
	mae /= float64(len(s.Values))
	assert.Less(t, mae, 0.5)
	assert.Len(t, pred.Components["weekly"], len(s.Timestamps))
}

// weekdaySeries returns n Monday-to-Friday rows starting 2021-01-04.
func weekdaySeries(n int, f func(i int) float64) *Series {
	ts := make([]time.Time, 0, n)
	ys := make([]float64, 0, n)
	for d := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC); len(ts) < n; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		ys = append(ys, f(len(ts)))
		ts = append(ts, d)
	}
	s, _ := NewSeries(ts, ys)
	return s
}

func TestFit_WeekdayHistoryKeepsWeekendsLevel(t *testing.T) {
	s := weekdaySeries(900, func(i int) float64 { return 4000 + 2.8*float64(i) + 60*math.Sin(float64(i)/90) })
	last := s.Values[len(s.Values)-1]

	m := New(DefaultConfig())
	require.NoError(t, m.Fit(s))
	require.Len(t, m.Seasonalities, 2)
	assert.Equal(t, "weekly", m.Seasonalities[1].Name)

	future := m.MakeFuture(14)[len(s.Values):]
	pred, err := m.Predict(future)
	require.NoError(t, err)

	assert.InEpsilon(t, last, pred.Yhat[0], 0.02)
	friday := math.NaN()
	for i, d := range future {
		switch d.Weekday() {
		case time.Friday:
			friday = pred.Yhat[i]
		case time.Saturday, time.Sunday:
			ref := friday
			if math.IsNaN(ref) {
				ref = last
			}
			assert.InEpsilon(t, ref, pred.Yhat[i], 0.03, "%s", d.Format("Mon 2006-01-02"))
		}
	}
}

func TestFit_ShortHistoryExtrapolation(t *testing.T) {
	curve := func(i int) float64 { return 4000 + 2*float64(i) + 80*math.Sin(float64(i)/40) }
	tests := []struct {
		name   string
		series *Series
	}{
		{"60 calendar days", dailySeries(60, curve)},
		{"25 weekdays", weekdaySeries(25, curve)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := tt.series.Values[len(tt.series.Values)-1]
			m := New(DefaultConfig())
			require.NoError(t, m.Fit(tt.series))

			pred, err := m.Predict(m.MakeFuture(90)[tt.series.Len():])
			require.NoError(t, err)
			for i, v := range pred.Yhat {
				assert.Greater(t, v, last/10, "day %d", i+1)
				assert.Less(t, v, last*10, "day %d", i+1)
			}
		})
	}
}

func TestFit_InsufficientData(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		series *Series
	}{
		{"single row", dailySeries(1, func(int) float64 { return 1 })},
		{"all missing", dailySeries(10, func(int) float64 { return nan })},
		{"one observed", dailySeries(5, func(i int) float64 {
			if i == 2 {
				return 3
			}
			return nan
		})},
		{"same timestamp", &Series{
			Timestamps: []time.Time{day0, day0, day0},
			Values:     []float64{1, 2, 3},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(DefaultConfig()).Fit(tt.series)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInsufficientData), "got %v", err)
		})
	}
}

func TestFit_IgnoresMissingValues(t *testing.T) {
	s := dailySeries(60, func(i int) float64 { return 20 + 0.25*float64(i) })
	s.Values[10] = math.NaN()
	s.Values[40] = math.NaN()

	m := New(trendOnlyConfig())
	require.NoError(t, m.Fit(s))

	pred, err := m.Predict([]time.Time{s.Timestamps[10], s.Timestamps[40]})
	require.NoError(t, err)
	assert.InDelta(t, 22.5, pred.Yhat[0], 0.05)
	assert.InDelta(t, 30.0, pred.Yhat[1], 0.05)
}

func TestFit_Deterministic(t *testing.T) {
	f := func(i int) float64 { return 100 + 3*math.Sin(float64(i)/5) + 0.2*float64(i%7) }
	run := func() []float64 {
		s := dailySeries(90, f)
		m := New(DefaultConfig())
		require.NoError(t, m.Fit(s))
		pred, err := m.Predict(m.MakeFuture(15))
		require.NoError(t, err)
		return pred.Yhat
	}
	assert.Equal(t, run(), run())
}

func TestPredict_NotFitted(t *testing.T) {
	_, err := New(DefaultConfig()).Predict([]time.Time{day0})
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestFit_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeasonalityMode = "multiplicative"
	err := New(cfg).Fit(dailySeries(10, func(i int) float64 { return float64(i) }))
	assert.Error(t, err)
}

func TestMakeFuture(t *testing.T) {
	ts := []time.Time{
		day0.AddDate(0, 0, 2),
		day0,
		day0.AddDate(0, 0, 1),
		day0.AddDate(0, 0, 2),
		day0.AddDate(0, 0, 3),
	}
	s, err := NewSeries(ts, []float64{3, 1, 2, 3, math.NaN()})
	require.NoError(t, err)

	m := New(trendOnlyConfig())
	require.NoError(t, m.Fit(s))

	future := m.MakeFuture(5)
	require.Len(t, future, 9)
	for i := 1; i < len(future); i++ {
		assert.True(t, future[i].After(future[i-1]), "index %d not increasing", i)
	}
	assert.Equal(t, day0.AddDate(0, 0, 3), m.HistoryEnd())
	assert.Equal(t, day0.AddDate(0, 0, 8), future[8])
	assert.Len(t, m.MakeFuture(0), 4)
}

func TestNewSeries_LengthMismatch(t *testing.T) {
	_, err := NewSeries([]time.Time{day0}, []float64{1, 2})
	assert.Error(t, err)
}
