package prophet

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInsufficientData is returned when fewer than two usable observations exist.
	ErrInsufficientData = errors.New("insufficient data points")
	// ErrNotFitted is returned by Predict before a successful Fit.
	ErrNotFitted = errors.New("model is not fitted")
	// ErrSingular is returned when the penalized normal equations cannot be solved.
	ErrSingular = errors.New("normal equations are not positive definite")
)

// trendPriorScale is the prior standard deviation of k and m.
const trendPriorScale = 5.0

// Model is an additive trend + seasonality model.
type Model struct {
	Config        Config
	Seasonalities []Seasonality
	Changepoints  []time.Time

	K      float64   // base growth rate (scaled)
	M      float64   // offset (scaled)
	Deltas []float64 // rate adjustments at each changepoint (scaled)
	Betas  []float64 // Fourier coefficients, component by component (scaled)
	Sigma  float64   // residual standard deviation (scaled)

	start        time.Time
	tScale       float64 // seconds
	yScale       float64
	cpsT         []float64
	fourierMeans []float64 // training mean of every Fourier column, aligned with Betas
	history      []time.Time
	fitted       bool
}

// New creates an unfitted model.
func New(cfg Config) *Model {
	return &Model{Config: cfg}
}

// Prediction holds the model output for a set of dates, in original units.
type Prediction struct {
	Dates      []time.Time
	Yhat       []float64
	Trend      []float64
	Components map[string][]float64
}

// Fit estimates the model coefficients from the series. Missing values are
// ignored; at least two observations spanning a non-zero time range are required.
func (m *Model) Fit(series *Series) error {
	if err := m.Config.validate(); err != nil {
		return err
	}
	ts, ys := series.observed()
	if len(ts) < 2 {
		return fmt.Errorf("%w: need at least 2 non-missing rows, have %d", ErrInsufficientData, len(ts))
	}

	m.start = ts[0]
	m.tScale = ts[len(ts)-1].Sub(m.start).Seconds()
	if m.tScale <= 0 {
		return fmt.Errorf("%w: all observations share one timestamp", ErrInsufficientData)
	}
	m.yScale = 0
	for _, y := range ys {
		if a := math.Abs(y); a > m.yScale {
			m.yScale = a
		}
	}
	if m.yScale == 0 {
		m.yScale = 1
	}

	m.Seasonalities = resolveSeasonalities(m.Config, ts)
	m.Changepoints = placeChangepoints(ts, m.Config.NChangepoints, m.Config.ChangepointRange)
	m.cpsT = make([]float64, len(m.Changepoints))
	for i, c := range m.Changepoints {
		m.cpsT[i] = m.scaleTime(c)
	}

	x := m.design(ts)
	m.fourierMeans = centerColumns(x, 2+len(m.cpsT))
	y := make([]float64, len(ys))
	for i, v := range ys {
		y[i] = v / m.yScale
	}

	theta, sigma, err := m.solve(x, y)
	if err != nil {
		return err
	}
	m.unpack(theta)
	m.Sigma = sigma
	m.history = series.uniqueDates()
	m.fitted = true
	return nil
}

// MakeFuture returns the history dates followed by periods daily dates after
// the last history date.
func (m *Model) MakeFuture(periods int) []time.Time {
	out := make([]time.Time, 0, len(m.history)+max(periods, 0))
	out = append(out, m.history...)
	if len(m.history) == 0 {
		return out
	}
	last := m.history[len(m.history)-1]
	for i := 1; i <= periods; i++ {
		out = append(out, last.AddDate(0, 0, i))
	}
	return out
}

// Predict evaluates the fitted model at the given dates.
func (m *Model) Predict(dates []time.Time) (*Prediction, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	p := &Prediction{
		Dates:      dates,
		Yhat:       make([]float64, len(dates)),
		Trend:      make([]float64, len(dates)),
		Components: make(map[string][]float64, len(m.Seasonalities)),
	}
	for _, s := range m.Seasonalities {
		p.Components[s.Name] = make([]float64, len(dates))
	}

	maxOrder := 0
	for _, s := range m.Seasonalities {
		if s.Order > maxOrder {
			maxOrder = s.Order
		}
	}
	row := make([]float64, 2*maxOrder)

	for i, d := range dates {
		trend := piecewiseLinear(m.scaleTime(d), m.K, m.M, m.Deltas, m.cpsT) * m.yScale
		yhat := trend
		off := 0
		for _, s := range m.Seasonalities {
			s.fourierRow(d, row)
			v := 0.0
			for j := 0; j < s.width(); j++ {
				v += m.Betas[off+j] * (row[j] - m.fourierMeans[off+j])
			}
			v *= m.yScale
			p.Components[s.Name][i] = v
			yhat += v
			off += s.width()
		}
		p.Trend[i] = trend
		p.Yhat[i] = yhat
	}
	return p, nil
}

// ResidualStd returns the residual standard deviation in original units.
func (m *Model) ResidualStd() float64 {
	return m.Sigma * m.yScale
}

// HistoryEnd returns the latest history date, or the zero time before Fit.
func (m *Model) HistoryEnd() time.Time {
	if len(m.history) == 0 {
		return time.Time{}
	}
	return m.history[len(m.history)-1]
}

func (m *Model) scaleTime(t time.Time) float64 {
	return t.Sub(m.start).Seconds() / m.tScale
}

// numParams returns the length of the coefficient vector:
// [k, m, deltas..., betas...].
func (m *Model) numParams() int {
	p := 2 + len(m.cpsT)
	for _, s := range m.Seasonalities {
		p += s.width()
	}
	return p
}

// design builds the row-major regression matrix for the given dates.
func (m *Model) design(ts []time.Time) [][]float64 {
	p := m.numParams()
	x := make([][]float64, len(ts))
	for i, d := range ts {
		row := make([]float64, p)
		t := m.scaleTime(d)
		row[0] = t
		row[1] = 1
		for j, s := range m.cpsT {
			if t >= s {
				row[2+j] = t - s
			}
		}
		off := 2 + len(m.cpsT)
		for _, s := range m.Seasonalities {
			s.fourierRow(d, row[off:off+s.width()])
			off += s.width()
		}
		x[i] = row
	}
	return x
}

// centerColumns subtracts the column mean from every column of x starting at
// from and returns the means. Centered Fourier columns sum to zero over the
// history, so seasonality cannot absorb the level of the series.
func centerColumns(x [][]float64, from int) []float64 {
	if len(x) == 0 {
		return nil
	}
	p := len(x[0])
	means := make([]float64, p-from)
	for _, row := range x {
		for j := from; j < p; j++ {
			means[j-from] += row[j]
		}
	}
	for j := range means {
		means[j] /= float64(len(x))
	}
	for _, row := range x {
		for j := from; j < p; j++ {
			row[j] -= means[j-from]
		}
	}
	return means
}

func (m *Model) unpack(theta []float64) {
	nc := len(m.cpsT)
	m.K = theta[0]
	m.M = theta[1]
	m.Deltas = append([]float64(nil), theta[2:2+nc]...)
	m.Betas = append([]float64(nil), theta[2+nc:]...)
}
