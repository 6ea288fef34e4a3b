package collector

import (
	"strconv"

	"stockcast/internal/model"
	"stockcast/internal/table"
)

// HistoryHeader is the column layout written by WriteHistory.
var HistoryHeader = []string{
	model.ColumnDate,
	model.ColumnOpen,
	model.ColumnHigh,
	model.ColumnLow,
	model.ColumnClose,
	model.ColumnAdjClose,
	model.ColumnVolume,
}

// HistoryRecords renders bars in HistoryHeader order.
func HistoryRecords(bars []model.Bar) [][]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	records := make([][]string, len(bars))
	for i, b := range bars {
		records[i] = []string{
			table.FormatDate(b.Time),
			f(b.Open),
			f(b.High),
			f(b.Low),
			f(b.Close),
			f(b.AdjClose),
			strconv.FormatInt(int64(b.Volume), 10),
		}
	}
	return records
}

// WriteHistory writes bars as a forecast-ready input CSV.
func WriteHistory(path string, bars []model.Bar) error {
	return table.Write(path, HistoryHeader, HistoryRecords(bars))
}
