package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrDegenerate marks series OLS cannot fit (constant or too short)
	ErrDegenerate = errors.New("degenerate series")
)

// Fit is an ordinary least squares line y = Intercept + Slope*x
type Fit struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// LinearFit regresses y on x. The slope is the hedge ratio when y is the
// second leg of a pair and x the first.
func LinearFit(x, y []float64) (Fit, error) {
	if len(x) != len(y) || len(x) < 3 {
		return Fit{}, ErrDegenerate
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return Fit{}, errors.New("non-finite observation")
		}
	}
	if stat.Variance(x, nil) == 0 {
		return Fit{}, ErrDegenerate
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return Fit{}, ErrDegenerate
	}

	r2 := stat.RSquared(x, y, nil, alpha, beta)
	if math.IsNaN(r2) {
		r2 = 0
	}

	return Fit{Slope: beta, Intercept: alpha, R2: r2}, nil
}

// Residuals returns y - (intercept + slope*x)
func (f Fit) Residuals(x, y []float64) []float64 {
	res := make([]float64, len(x))
	for i := range x {
		res[i] = y[i] - (f.Intercept + f.Slope*x[i])
	}
	return res
}
