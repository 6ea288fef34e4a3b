package runner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcast/internal/model"
	"stockcast/internal/table"
)

func TestInspect(t *testing.T) {
	tbl, err := table.Read(writeHistory(t, 30, fullHeader))
	require.NoError(t, err)

	st, err := Inspect(tbl)
	require.NoError(t, err)
	assert.Equal(t, 30, st.Rows)
	assert.Equal(t, start, st.First)
	assert.Equal(t, start.AddDate(0, 0, 29), st.Last)
	assert.False(t, math.IsNaN(st.SMA20))
	assert.True(t, math.IsNaN(st.SMA200))
	assert.Greater(t, st.High52w, st.Low52w)
	assert.False(t, math.IsNaN(st.LastClose))
}

func TestInspect_RequiresClose(t *testing.T) {
	tbl, err := table.Read(writeHistory(t, 5, []string{"Date", "Open"}))
	require.NoError(t, err)
	_, err = Inspect(tbl)
	assert.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, model.DefaultTargets, opts.Columns)
	assert.Equal(t, 30, opts.DaysPerMonth)
	assert.Equal(t, 5, opts.SmoothingWindow)
	assert.Equal(t, "/tmp/predictions.csv", opts.OutputPath)
	assert.Equal(t, "/tmp/stock-price-copy.csv", opts.CopyPath)
	assert.Equal(t, 25, opts.Model.NChangepoints)
}
