package model

import "time"

// Bar represents a single daily candlestick as returned by a data source.
type Bar struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// Row is one parsed input row. Cells keeps the raw text of every column so
// that input rows can be written back unchanged.
type Row struct {
	Date  time.Time
	Cells []string
}

// PriceTable is a CSV price history held in memory for the duration of a run.
type PriceTable struct {
	Header  []string
	Rows    []Row
	DateCol int
}

// ColumnIndex returns the position of the named column, or -1.
func (t *PriceTable) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (t *PriceTable) Len() int { return len(t.Rows) }

// MaxDate returns the latest date in the table, or the zero time if empty.
func (t *PriceTable) MaxDate() time.Time {
	var max time.Time
	for _, r := range t.Rows {
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return max
}

// MinDate returns the earliest date in the table, or the zero time if empty.
func (t *PriceTable) MinDate() time.Time {
	var min time.Time
	for i, r := range t.Rows {
		if i == 0 || r.Date.Before(min) {
			min = r.Date
		}
	}
	return min
}
