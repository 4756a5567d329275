package stats

import "fmt"

// CointOutcome is the Engle-Granger test result for one pair
type CointOutcome struct {
	Tau    float64
	PValue float64
	Crit5  float64
	Lag    int
}

// EngleGranger tests for a long-run equilibrium between x and y: fit y on x
// by OLS, then test the residuals for a unit root. A small p-value means the
// residual (the spread) mean-reverts.
func EngleGranger(x, y []float64) (CointOutcome, error) {
	fit, err := LinearFit(x, y)
	if err != nil {
		return CointOutcome{}, fmt.Errorf("cointegrating regression: %w", err)
	}

	adf, err := ADF(fit.Residuals(x, y))
	if err != nil {
		return CointOutcome{}, fmt.Errorf("residual unit-root test: %w", err)
	}

	return CointOutcome{
		Tau:    adf.Tau,
		PValue: PValueTau(adf.Tau),
		Crit5:  CriticalValue5(len(x)),
		Lag:    adf.Lag,
	}, nil
}
