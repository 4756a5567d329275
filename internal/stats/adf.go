package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// minEffectiveRows is the fewest regression rows the ADF fit will run with.
// The Schwert lag order is trimmed until at least this many rows remain.
const minEffectiveRows = 20

// ADFResult is the outcome of an augmented Dickey-Fuller regression with
// constant: delta_u[t] = alpha + gamma*u[t-1] + sum(phi_i * delta_u[t-i]).
type ADFResult struct {
	Tau float64 // t-statistic on gamma
	Lag int     // number of lagged difference terms used
}

// schwertLag is the deterministic lag-order rule 12*(n/100)^0.25, trimmed so
// the regression keeps enough rows. statsmodels' AIC autolag is deliberately
// not reproduced; a fixed rule keeps screening runs reproducible.
func schwertLag(n int) int {
	lag := int(math.Floor(12 * math.Pow(float64(n)/100, 0.25)))
	for lag > 0 && n-1-lag < minEffectiveRows {
		lag--
	}
	return lag
}

// ADF runs the augmented Dickey-Fuller test on u. A strongly negative tau
// rejects the unit root, i.e. the series looks stationary.
func ADF(u []float64) (ADFResult, error) {
	n := len(u)
	if n < minEffectiveRows+2 {
		return ADFResult{}, errors.New("series too short for ADF regression")
	}

	lag := schwertLag(n)

	// First differences: d[k] = u[k+1] - u[k]
	d := make([]float64, n-1)
	for k := 0; k < n-1; k++ {
		d[k] = u[k+1] - u[k]
	}

	rows := n - 1 - lag
	cols := 2 + lag
	if rows <= cols {
		return ADFResult{}, errors.New("not enough observations for lag order")
	}

	X := mat.NewDense(rows, cols, nil)
	Y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		k := i + lag
		Y.SetVec(i, d[k])
		X.Set(i, 0, 1)
		X.Set(i, 1, u[k]) // level lagged one period behind d[k]
		for j := 1; j <= lag; j++ {
			X.Set(i, 1+j, d[k-j])
		}
	}

	var qr mat.QR
	qr.Factorize(X)
	beta := mat.NewDense(cols, 1, nil)
	if err := qr.SolveTo(beta, false, Y); err != nil {
		return ADFResult{}, errors.New("singular ADF regression")
	}

	// Residual variance and standard error of gamma via (X'X)^-1
	var fitted mat.VecDense
	fitted.MulVec(X, beta.ColView(0))
	rss := 0.0
	for i := 0; i < rows; i++ {
		e := Y.AtVec(i) - fitted.AtVec(i)
		rss += e * e
	}
	sigma2 := rss / float64(rows-cols)

	var xtx, inv mat.Dense
	xtx.Mul(X.T(), X)
	if err := inv.Inverse(&xtx); err != nil {
		return ADFResult{}, errors.New("singular ADF regression")
	}
	se := math.Sqrt(sigma2 * inv.At(1, 1))
	if se == 0 || math.IsNaN(se) {
		return ADFResult{}, errors.New("zero variance in ADF regression")
	}

	tau := beta.At(1, 0) / se
	if math.IsNaN(tau) || math.IsInf(tau, 0) {
		return ADFResult{}, errors.New("non-finite ADF statistic")
	}

	return ADFResult{Tau: tau, Lag: lag}, nil
}
