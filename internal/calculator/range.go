package calculator

import (
	"errors"
	"math"
)

// TradingDaysPerYear is the lookback used for 52-week statistics.
const TradingDaysPerYear = 252

// RangeHigh returns the maximum of the most recent lookback values, ignoring NaN.
func RangeHigh(values []float64, lookback int) (float64, error) {
	return extreme(values, lookback, func(a, b float64) bool { return a > b }, math.Inf(-1))
}

// RangeLow returns the minimum of the most recent lookback values, ignoring NaN.
func RangeLow(values []float64, lookback int) (float64, error) {
	return extreme(values, lookback, func(a, b float64) bool { return a < b }, math.Inf(1))
}

func extreme(values []float64, lookback int, better func(a, b float64) bool, init float64) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	start := len(values) - lookback
	if start < 0 {
		start = 0
	}
	best := init
	found := false
	for _, v := range values[start:] {
		if math.IsNaN(v) {
			continue
		}
		if better(v, best) {
			best = v
		}
		found = true
	}
	if !found {
		return 0, errors.New("no values in range")
	}
	return best, nil
}
