package runner

import (
	"time"

	"github.com/shopspring/decimal"

	"stockcast/internal/model"
	"stockcast/internal/table"
)

// JoinFrames inner-joins frames on exact date equality, keeping the order of
// the first frame. A date repeated within a frame yields one row per matching
// pair. Dates missing from any frame are dropped; the number of distinct
// dropped dates is returned alongside the table.
func JoinFrames(frames []*model.Frame) (*model.ForecastTable, int) {
	out := &model.ForecastTable{}
	if len(frames) == 0 {
		return out, 0
	}

	union := make(map[time.Time]struct{})
	for _, f := range frames {
		out.Columns = append(out.Columns, f.Column)
		for _, p := range f.Points {
			union[p.Date] = struct{}{}
		}
	}

	rows := make([]model.ForecastRow, 0, len(frames[0].Points))
	for _, p := range frames[0].Points {
		rows = append(rows, model.ForecastRow{Date: p.Date, Values: []decimal.Decimal{p.Value}})
	}

	for _, f := range frames[1:] {
		byDate := make(map[time.Time][]decimal.Decimal, len(f.Points))
		for _, p := range f.Points {
			byDate[p.Date] = append(byDate[p.Date], p.Value)
		}
		joined := make([]model.ForecastRow, 0, len(rows))
		for _, r := range rows {
			for _, v := range byDate[r.Date] {
				vals := make([]decimal.Decimal, len(r.Values), len(r.Values)+1)
				copy(vals, r.Values)
				joined = append(joined, model.ForecastRow{Date: r.Date, Values: append(vals, v)})
			}
		}
		rows = joined
	}
	out.Rows = rows

	kept := make(map[time.Time]struct{}, len(rows))
	for _, r := range rows {
		kept[r.Date] = struct{}{}
	}
	return out, len(union) - len(kept)
}

// Assemble renders the input rows followed by the forecast rows, using the
// input header. Columns without a forecast are left empty in forecast rows.
func Assemble(t *model.PriceTable, fc *model.ForecastTable) [][]string {
	records := make([][]string, 0, len(t.Rows)+fc.Len())
	for _, r := range t.Rows {
		records = append(records, append([]string(nil), r.Cells...))
	}
	if fc.Len() == 0 {
		return records
	}

	idx := make([]int, len(fc.Columns))
	for j, c := range fc.Columns {
		idx[j] = t.ColumnIndex(c)
	}
	for _, row := range fc.Rows {
		rec := make([]string, len(t.Header))
		rec[t.DateCol] = table.FormatDate(row.Date)
		for j, v := range row.Values {
			if idx[j] >= 0 {
				rec[idx[j]] = v.String()
			}
		}
		records = append(records, rec)
	}
	return records
}
