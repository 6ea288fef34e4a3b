package runner

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"stockcast/internal/calculator"
	"stockcast/internal/model"
	"stockcast/internal/prophet"
	"stockcast/internal/table"
)

// ForecastColumn fits an independent model to one column of t and returns its
// smoothed, rounded predictions for the horizonDays days after the last date.
func ForecastColumn(t *model.PriceTable, column string, horizonDays int, opts Options) (*model.Frame, model.ColumnFit, error) {
	started := time.Now()
	fit := model.ColumnFit{Column: column}

	values, err := table.Column(t, column)
	if err != nil {
		return nil, fit, err
	}
	series, err := prophet.NewSeries(table.Dates(t), values)
	if err != nil {
		return nil, fit, err
	}
	series.Name = column
	for _, v := range values {
		if !math.IsNaN(v) {
			fit.TrainRows++
		}
	}

	m := prophet.New(opts.Model)
	if err := m.Fit(series); err != nil {
		return nil, fit, fmt.Errorf("fit %s: %w", column, err)
	}
	fit.Changepoints = len(m.Changepoints)
	fit.ResidualStd = m.ResidualStd()

	future := m.MakeFuture(horizonDays)
	pred, err := m.Predict(future)
	if err != nil {
		return nil, fit, fmt.Errorf("predict %s: %w", column, err)
	}
	smoothed, err := calculator.RollingMean(pred.Yhat, opts.SmoothingWindow)
	if err != nil {
		return nil, fit, fmt.Errorf("smooth %s: %w", column, err)
	}

	// every input date, missing values included, is in the model's history
	cutoff := m.HistoryEnd()
	frame := &model.Frame{Column: column}
	for i, d := range future {
		if !d.After(cutoff) {
			continue
		}
		v := smoothed[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fit, fmt.Errorf("predict %s: non-finite value at %s", column, d.Format("2006-01-02"))
		}
		frame.Points = append(frame.Points, model.Point{Date: d, Value: roundValue(column, v)})
	}
	fit.FutureRows = len(frame.Points)
	fit.Duration = time.Since(started)
	return frame, fit, nil
}

// roundValue rounds counts to integers and prices to 6 decimal places,
// half to even.
func roundValue(column string, v float64) decimal.Decimal {
	d := decimal.NewFromFloat(v)
	if model.IsCountColumn(column) {
		return d.RoundBank(0)
	}
	return d.RoundBank(6)
}
