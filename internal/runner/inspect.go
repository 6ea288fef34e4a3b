package runner

import (
	"log"
	"math"

	"stockcast/internal/calculator"
	"stockcast/internal/model"
	"stockcast/internal/table"
)

// Inspect summarizes a price table using its Close, High and Low columns.
func Inspect(t *model.PriceTable) (*model.TableStats, error) {
	st := &model.TableStats{
		Rows:    t.Len(),
		Columns: append([]string(nil), t.Header...),
		First:   t.MinDate(),
		Last:    t.MaxDate(),
		SMA20:   math.NaN(),
		SMA200:  math.NaN(),
		High52w: math.NaN(),
		Low52w:  math.NaN(),
	}

	closes, err := table.Column(t, model.ColumnClose)
	if err != nil {
		return nil, err
	}
	closes = dropNaN(closes)
	if len(closes) > 0 {
		st.LastClose = closes[len(closes)-1]
	} else {
		st.LastClose = math.NaN()
	}
	if v, err := calculator.CalculateSMA(closes, 20); err == nil {
		st.SMA20 = v
	}
	if v, err := calculator.CalculateSMA(closes, 200); err == nil {
		st.SMA200 = v
	}

	if highs, err := table.Column(t, model.ColumnHigh); err == nil {
		if v, err := calculator.RangeHigh(highs, calculator.TradingDaysPerYear); err == nil {
			st.High52w = v
		}
	} else {
		log.Printf("[WARN] 52-week high unavailable: %v", err)
	}
	if lows, err := table.Column(t, model.ColumnLow); err == nil {
		if v, err := calculator.RangeLow(lows, calculator.TradingDaysPerYear); err == nil {
			st.Low52w = v
		}
	} else {
		log.Printf("[WARN] 52-week low unavailable: %v", err)
	}
	return st, nil
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
