package table

import (
	"math"
	"strconv"
	"strings"
	"time"

	"stockcast/internal/model"
)

// Column extracts a numeric column. Empty, NA, NaN and null cells become NaN.
func Column(t *model.PriceTable, name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, &ParseError{Column: name, Err: ErrMissingColumn}
	}
	values := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		s := strings.TrimSpace(strings.Trim(r.Cells[idx], "\""))
		switch s {
		case "", "NA", "NaN", "nan", "null":
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			// header is line 1
			return nil, &ParseError{Line: i + 2, Column: name, Value: s, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// Dates returns the parsed Date column in row order.
func Dates(t *model.PriceTable) []time.Time {
	out := make([]time.Time, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Date
	}
	return out
}
