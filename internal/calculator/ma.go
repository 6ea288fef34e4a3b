package calculator

import (
	"errors"
	"math"
)

// RollingMean returns the trailing moving average of values over window
// samples. The first window-1 outputs average over the samples available so far.
// NaN inputs are skipped; an output is NaN only when its whole window is NaN.
func RollingMean(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(values))
	sum := 0.0
	count := 0
	for i, v := range values {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
		if i >= window {
			if old := values[i-window]; !math.IsNaN(old) {
				sum -= old
				count--
			}
		}
		if count == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(count)
	}
	return out, nil
}

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}
