package prophet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// noise floor in scaled units, i.e. 1% of max |y|
	minSigma    = 0.01
	minAbsDelta = 1e-6
	convergeTol = 1e-9
)

// solve finds the MAP coefficients for y ~ X*theta under the model priors.
// Each pass solves a ridge system whose Laplace terms are majorized at the
// previous estimate, then re-estimates the noise scale from the residuals.
func (m *Model) solve(x [][]float64, y []float64) ([]float64, float64, error) {
	n := len(y)
	p := m.numParams()
	nc := len(m.cpsT)
	tau := m.Config.ChangepointPriorScale

	// Prior precisions. Deltas start as Normal(0, tau) and are reweighted below.
	prec := make([]float64, p)
	prec[0] = 1 / (trendPriorScale * trendPriorScale)
	prec[1] = prec[0]
	for j := 0; j < nc; j++ {
		prec[2+j] = 1 / (tau * tau)
	}
	off := 2 + nc
	for _, s := range m.Seasonalities {
		for j := 0; j < s.width(); j++ {
			prec[off+j] = 1 / (s.PriorScale * s.PriorScale)
		}
		off += s.width()
	}

	// Gram matrix and moment vector do not change between passes.
	xtx := make([]float64, p*p)
	xty := make([]float64, p)
	for i, row := range x {
		for a := 0; a < p; a++ {
			if row[a] == 0 {
				continue
			}
			xty[a] += row[a] * y[i]
			for b := a; b < p; b++ {
				xtx[a*p+b] += row[a] * row[b]
			}
		}
	}

	sigma := initialSigma(y)
	theta := make([]float64, p)
	for iter := 0; iter < m.Config.FitIterations; iter++ {
		w := 1 / (sigma * sigma)
		a := mat.NewSymDense(p, nil)
		b := mat.NewVecDense(p, nil)
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				v := xtx[i*p+j] * w
				if i == j {
					v += prec[i]
				}
				a.SetSym(i, j, v)
			}
			b.SetVec(i, xty[i]*w)
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(a); !ok {
			return nil, 0, ErrSingular
		}
		var sol mat.VecDense
		if err := chol.SolveVecTo(&sol, b); err != nil {
			return nil, 0, ErrSingular
		}

		change := 0.0
		for i := 0; i < p; i++ {
			v := sol.AtVec(i)
			if d := math.Abs(v - theta[i]); d > change {
				change = d
			}
			theta[i] = v
		}

		rss := 0.0
		for i, row := range x {
			r := y[i]
			for j, v := range row {
				r -= v * theta[j]
			}
			rss += r * r
		}
		sigma = math.Max(math.Sqrt(rss/float64(n)), minSigma)

		for j := 0; j < nc; j++ {
			prec[2+j] = 1 / (tau * math.Max(math.Abs(theta[2+j]), minAbsDelta))
		}

		if iter > 0 && change < convergeTol {
			break
		}
	}
	return theta, sigma, nil
}

// initialSigma is the sample standard deviation of y, floored at minSigma.
func initialSigma(y []float64) float64 {
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	ss := 0.0
	for _, v := range y {
		ss += (v - mean) * (v - mean)
	}
	return math.Max(math.Sqrt(ss/float64(len(y))), minSigma)
}
