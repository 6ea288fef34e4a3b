package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeHighLow(t *testing.T) {
	values := []float64{9, 1, 5, math.NaN(), 7, 3}

	hi, err := RangeHigh(values, 4)
	require.NoError(t, err)
	assert.Equal(t, 7.0, hi)

	lo, err := RangeLow(values, 4)
	require.NoError(t, err)
	assert.Equal(t, 3.0, lo)

	hi, err = RangeHigh(values, TradingDaysPerYear)
	require.NoError(t, err)
	assert.Equal(t, 9.0, hi)

	lo, err = RangeLow(values, TradingDaysPerYear)
	require.NoError(t, err)
	assert.Equal(t, 1.0, lo)
}

func TestRangeHigh_Errors(t *testing.T) {
	_, err := RangeHigh([]float64{1}, 0)
	assert.Error(t, err)
	_, err = RangeHigh([]float64{math.NaN()}, 5)
	assert.Error(t, err)
	_, err = RangeLow(nil, 5)
	assert.Error(t, err)
}
