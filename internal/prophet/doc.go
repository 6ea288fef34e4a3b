// Package prophet implements an additive trend + seasonality forecasting model.
//
// A series y(t) is decomposed as
//
//	y(t) = g(t) + s(t) + e(t)
//
// where g is a piecewise-linear trend whose slope may change at a fixed grid of
// potential changepoints, s is a sum of Fourier series (yearly, weekly, daily)
// and e is Gaussian noise.
//
// # Priors
//
// The model is fitted as a maximum a posteriori estimate:
//
//   - Normal(0, 5) on the base growth rate k and offset m
//   - Normal(0, SeasonalityPriorScale) on every Fourier coefficient
//   - Laplace(0, ChangepointPriorScale) on every rate adjustment delta
//
// The Laplace prior is handled by iteratively reweighted ridge regression, and
// the noise scale is re-estimated from the residuals on every pass, floored at
// 1% of the largest observation. Fourier features are centered on their
// history means, so the trend alone carries the level. The solve is
// deterministic: identical input always produces identical coefficients.
//
// # Basic Usage
//
//	m := prophet.New(prophet.DefaultConfig())
//	if err := m.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//	future := m.MakeFuture(90)
//	pred, _ := m.Predict(future)
//	fmt.Println(pred.Yhat[len(pred.Yhat)-1])
//
// Time is scaled to [0, 1] over the history span and values are scaled by their
// maximum absolute value before fitting; predictions are returned in original
// units.
package prophet
