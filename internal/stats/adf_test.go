package stats

import (
	"math"
	"math/rand"
	"testing"
)

// ar1 generates a deterministic AR(1) series u[t] = phi*u[t-1] + e[t]
func ar1(n int, phi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	u := make([]float64, n)
	for t := 1; t < n; t++ {
		u[t] = phi*u[t-1] + rng.NormFloat64()
	}
	return u
}

// randomWalk generates a deterministic unit-root series
func randomWalk(n int, seed int64) []float64 {
	return ar1(n, 1.0, seed)
}

func TestADFRejectsUnitRootForStationarySeries(t *testing.T) {
	u := ar1(300, 0.2, 42)

	res, err := ADF(u)
	if err != nil {
		t.Fatalf("ADF() failed: %v", err)
	}

	// A strongly mean-reverting series should reject far beyond the 5%
	// cointegration critical value.
	if res.Tau >= -3.34 {
		t.Errorf("Expected tau < -3.34 for AR(0.2), got %v", res.Tau)
	}
}

func TestADFStationaryVsWalk(t *testing.T) {
	stationary := ar1(300, 0.3, 7)
	walk := randomWalk(300, 7)

	resS, err := ADF(stationary)
	if err != nil {
		t.Fatalf("ADF(stationary) failed: %v", err)
	}
	resW, err := ADF(walk)
	if err != nil {
		t.Fatalf("ADF(walk) failed: %v", err)
	}

	if resS.Tau >= resW.Tau {
		t.Errorf("Expected stationary tau (%v) more negative than walk tau (%v)", resS.Tau, resW.Tau)
	}
}

func TestADFTooShort(t *testing.T) {
	if _, err := ADF(make([]float64, 10)); err == nil {
		t.Error("Expected error for short series, got nil")
	}
}

func TestSchwertLagTrimsForSmallSamples(t *testing.T) {
	if lag := schwertLag(30); 30-1-lag < minEffectiveRows {
		t.Errorf("Lag %d leaves too few rows for n=30", lag)
	}
	if lag := schwertLag(400); lag < 1 {
		t.Errorf("Expected positive lag for n=400, got %d", lag)
	}
}

func TestPValueTauClamps(t *testing.T) {
	if p := PValueTau(-10); p != 1e-4 {
		t.Errorf("Expected floor clamp for extreme tau, got %v", p)
	}
	if p := PValueTau(2); p != 0.9999 {
		t.Errorf("Expected ceiling clamp for positive tau, got %v", p)
	}
}

func TestPValueTauMonotonic(t *testing.T) {
	taus := []float64{-4.5, -3.9, -3.5, -3.0, -2.0, -1.0, 0}
	prev := -1.0
	for _, tau := range taus {
		p := PValueTau(tau)
		if p <= prev {
			t.Errorf("PValueTau not increasing at tau=%v: %v <= %v", tau, p, prev)
		}
		if p < 1e-4 || p > 0.9999 {
			t.Errorf("PValueTau(%v) = %v outside clamp", tau, p)
		}
		prev = p
	}
}

func TestPValueTauAtQuantiles(t *testing.T) {
	if p := PValueTau(-3.3361); math.Abs(p-0.05) > 1e-3 {
		t.Errorf("Expected p ~0.05 at the 5%% quantile, got %v", p)
	}
	if p := PValueTau(-3.8964); math.Abs(p-0.01) > 1e-3 {
		t.Errorf("Expected p ~0.01 at the 1%% quantile, got %v", p)
	}
}

func TestCriticalValue5(t *testing.T) {
	cv := CriticalValue5(250)
	// Finite-sample value sits just below the asymptotic -3.336
	if cv > -3.33 || cv < -3.45 {
		t.Errorf("Unexpected 5%% critical value for n=250: %v", cv)
	}
	if !(CriticalValue5(50) < CriticalValue5(500)) {
		t.Error("Critical value should tighten toward the asymptote as n grows")
	}
}

func TestEngleGrangerCointegratedPair(t *testing.T) {
	x := randomWalk(250, 11)
	for i := range x {
		x[i] += 100 // price-like level
	}
	noise := ar1(250, 0.2, 12)
	y := make([]float64, len(x))
	for i := range x {
		y[i] = 2*x[i] + 10 + noise[i]
	}

	out, err := EngleGranger(x, y)
	if err != nil {
		t.Fatalf("EngleGranger() failed: %v", err)
	}

	if out.PValue >= 0.05 {
		t.Errorf("Expected p < 0.05 for constructed cointegrated pair, got %v", out.PValue)
	}
	if out.Crit5 >= 0 {
		t.Errorf("Expected negative 5%% critical value, got %v", out.Crit5)
	}
}

func TestEngleGrangerIndependentWalks(t *testing.T) {
	x := randomWalk(250, 21)
	y := randomWalk(250, 22)
	for i := range x {
		x[i] += 100
		y[i] += 150
	}

	indep, err := EngleGranger(x, y)
	if err != nil {
		t.Fatalf("EngleGranger() failed: %v", err)
	}

	noise := ar1(250, 0.2, 23)
	y2 := make([]float64, len(x))
	for i := range x {
		y2[i] = 1.5*x[i] + noise[i]
	}
	coint, err := EngleGranger(x, y2)
	if err != nil {
		t.Fatalf("EngleGranger() failed: %v", err)
	}

	if indep.PValue <= coint.PValue {
		t.Errorf("Independent walks (p=%v) should score worse than cointegrated pair (p=%v)",
			indep.PValue, coint.PValue)
	}
}

func TestEngleGrangerDeterministic(t *testing.T) {
	x := randomWalk(200, 31)
	noise := ar1(200, 0.3, 32)
	y := make([]float64, len(x))
	for i := range x {
		y[i] = x[i] + noise[i]
	}

	a, err := EngleGranger(x, y)
	if err != nil {
		t.Fatalf("EngleGranger() failed: %v", err)
	}
	b, err := EngleGranger(x, y)
	if err != nil {
		t.Fatalf("EngleGranger() failed: %v", err)
	}

	if a != b {
		t.Errorf("Expected identical results for identical inputs: %+v vs %+v", a, b)
	}
}
