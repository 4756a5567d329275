package stats

import "math"

// Quantiles of the Engle-Granger residual ADF distribution for two variables
// with constant (MacKinnon tau_c, N=2), asymptotic. P-values interpolate
// linearly between grid points and extrapolate on the end segments so that
// ranking stays strictly monotonic in tau.
var tauQuantiles = []struct {
	p   float64
	tau float64
}{
	{0.01, -3.8964},
	{0.025, -3.6112},
	{0.05, -3.3361},
	{0.10, -3.0445},
	{0.90, -1.1900},
	{0.95, -0.8900},
	{0.975, -0.6200},
	{0.99, -0.3000},
}

// Finite-sample response surface for the 5% critical value,
// cv(n) = b0 + b1/n + b2/n^2 (MacKinnon 2010, tau_c N=2).
var crit5Surface = [3]float64{-3.33613, -6.1101, -6.823}

// PValueTau maps an Engle-Granger tau statistic to an approximate p-value
func PValueTau(tau float64) float64 {
	first, last := tauQuantiles[0], tauQuantiles[len(tauQuantiles)-1]

	switch {
	case tau <= first.tau:
		// Extend the leftmost segment
		next := tauQuantiles[1]
		slope := (next.p - first.p) / (next.tau - first.tau)
		return clampP(first.p + slope*(tau-first.tau))
	case tau >= last.tau:
		prev := tauQuantiles[len(tauQuantiles)-2]
		slope := (last.p - prev.p) / (last.tau - prev.tau)
		return clampP(last.p + slope*(tau-last.tau))
	}

	for i := 0; i < len(tauQuantiles)-1; i++ {
		lo, hi := tauQuantiles[i], tauQuantiles[i+1]
		if tau >= lo.tau && tau < hi.tau {
			frac := (tau - lo.tau) / (hi.tau - lo.tau)
			return clampP(lo.p + frac*(hi.p-lo.p))
		}
	}
	return 1.0
}

// CriticalValue5 returns the finite-sample 5% critical value for n
// aligned observations
func CriticalValue5(n int) float64 {
	fn := float64(n)
	return crit5Surface[0] + crit5Surface[1]/fn + crit5Surface[2]/(fn*fn)
}

func clampP(p float64) float64 {
	return math.Min(math.Max(p, 1e-4), 0.9999)
}
