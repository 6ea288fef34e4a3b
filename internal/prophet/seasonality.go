package prophet

import (
	"math"
	"time"
)

const secondsPerDay = 86400.0

// Seasonality is one Fourier-series component.
type Seasonality struct {
	Name       string
	Period     float64 // days
	Order      int
	PriorScale float64
}

// width returns the number of feature columns the component contributes.
func (s Seasonality) width() int { return 2 * s.Order }

// epochDays converts t to fractional days since the Unix epoch.
func epochDays(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9 / secondsPerDay
}

// fourierRow writes sin/cos pairs for orders 1..Order into dst.
func (s Seasonality) fourierRow(t time.Time, dst []float64) {
	d := epochDays(t)
	for i := 0; i < s.Order; i++ {
		x := 2.0 * float64(i+1) * math.Pi * d / s.Period
		dst[2*i] = math.Sin(x)
		dst[2*i+1] = math.Cos(x)
	}
}

// resolveSeasonalities decides which components are active for a history.
// Auto rules: yearly needs two years of history, weekly two weeks of
// sub-weekly data, daily two days of sub-daily data.
func resolveSeasonalities(cfg Config, ts []time.Time) []Seasonality {
	span := 0.0
	minGap := math.Inf(1)
	if len(ts) > 1 {
		span = ts[len(ts)-1].Sub(ts[0]).Hours() / 24
		for i := 1; i < len(ts); i++ {
			gap := ts[i].Sub(ts[i-1]).Hours() / 24
			if gap > 0 && gap < minGap {
				minGap = gap
			}
		}
	}

	enabled := func(tg Toggle, minSpan, maxGap float64) bool {
		switch tg {
		case SeasonalityOn:
			return true
		case SeasonalityAuto:
			return span >= minSpan && minGap < maxGap
		default:
			return false
		}
	}

	var out []Seasonality
	if enabled(cfg.YearlySeasonality, 730, math.Inf(1)) {
		out = append(out, Seasonality{Name: "yearly", Period: 365.25, Order: cfg.YearlyFourierOrder, PriorScale: cfg.SeasonalityPriorScale})
	}
	if enabled(cfg.WeeklySeasonality, 14, 7) {
		out = append(out, Seasonality{Name: "weekly", Period: 7, Order: cfg.WeeklyFourierOrder, PriorScale: cfg.SeasonalityPriorScale})
	}
	if enabled(cfg.DailySeasonality, 2, 1) {
		out = append(out, Seasonality{Name: "daily", Period: 1, Order: cfg.DailyFourierOrder, PriorScale: cfg.SeasonalityPriorScale})
	}
	return out
}
