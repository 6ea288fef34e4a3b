package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Target column names as they appear in Yahoo-style history exports.
const (
	ColumnDate     = "Date"
	ColumnOpen     = "Open"
	ColumnHigh     = "High"
	ColumnLow      = "Low"
	ColumnClose    = "Close"
	ColumnAdjClose = "Adj Close"
	ColumnVolume   = "Volume"
)

// DefaultTargets is the forecast column order used when none is configured.
var DefaultTargets = []string{
	ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnAdjClose, ColumnVolume,
}

// IsCountColumn reports whether values of the column are integral counts.
func IsCountColumn(name string) bool {
	return name == ColumnVolume
}

// Point is a single predicted value.
type Point struct {
	Date  time.Time
	Value decimal.Decimal
}

// Frame holds the future-only, smoothed and rounded forecast for one column.
type Frame struct {
	Column string
	Points []Point
}

// ForecastRow is one wide row of the assembled forecast table. Values are
// ordered like ForecastTable.Columns.
type ForecastRow struct {
	Date   time.Time
	Values []decimal.Decimal
}

// ForecastTable is the inner join of several frames on Date.
type ForecastTable struct {
	Columns []string
	Rows    []ForecastRow
}

// Len returns the number of forecast rows.
func (f *ForecastTable) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}
