package prophet

import (
	"math"
	"time"
)

// placeChangepoints spreads up to n changepoints uniformly over the first
// rangeFrac of the (sorted) history, skipping the first point.
func placeChangepoints(ts []time.Time, n int, rangeFrac float64) []time.Time {
	histSize := int(math.Floor(float64(len(ts)) * rangeFrac))
	if n+1 > histSize {
		n = histSize - 1
	}
	if n <= 0 {
		return nil
	}
	cps := make([]time.Time, 0, n)
	step := float64(histSize-1) / float64(n)
	for i := 1; i <= n; i++ {
		idx := int(math.RoundToEven(float64(i) * step))
		cps = append(cps, ts[idx])
	}
	return cps
}

// piecewiseLinear evaluates k*t + m + sum(delta_j * (t - s_j)+).
func piecewiseLinear(t, k, m float64, deltas, cps []float64) float64 {
	g := k*t + m
	for j, s := range cps {
		if t >= s {
			g += deltas[j] * (t - s)
		}
	}
	return g
}
