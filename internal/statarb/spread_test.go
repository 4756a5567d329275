package statarb

import (
	"math"
	"testing"
)

func TestBuildSpread(t *testing.T) {
	price1 := []float64{100, 102, 104}
	price2 := []float64{210, 215, 212}

	spread := BuildSpread(price1, price2, 2.0, 5.0)

	want := []float64{5, 6, -1} // p2 - (2*p1 + 5)
	for i := range want {
		if math.Abs(spread[i]-want[i]) > 1e-9 {
			t.Errorf("Spread %d: expected %v, got %v", i, want[i], spread[i])
		}
	}
}

func TestBuildSpreadEmpty(t *testing.T) {
	if got := BuildSpread(nil, nil, 1, 0); len(got) != 0 {
		t.Errorf("Expected empty spread, got %v", got)
	}
}

func TestRollingZScoresWarmup(t *testing.T) {
	spread := []float64{1, 2, 3, 4, 5}
	z := RollingZScores(spread, 4) // minPeriods = 2

	if !math.IsNaN(z[0]) {
		t.Errorf("Expected NaN before minimum periods, got %v", z[0])
	}
	// Window [1,2]: mean 1.5, sample std sqrt(0.5)
	if want := 0.5 / math.Sqrt(0.5); math.Abs(z[1]-want) > 1e-9 {
		t.Errorf("Expected z %v at index 1, got %v", want, z[1])
	}
	// Window [1,2,3]: mean 2, sample std 1
	if math.Abs(z[2]-1.0) > 1e-9 {
		t.Errorf("Expected z 1.0 at index 2, got %v", z[2])
	}
}

func TestRollingZScoresMinPeriods(t *testing.T) {
	spread := make([]float64, 30)
	for i := range spread {
		spread[i] = float64(i % 7)
	}
	z := RollingZScores(spread, 20) // minPeriods = 10

	for i := 0; i < 9; i++ {
		if !math.IsNaN(z[i]) {
			t.Errorf("Index %d: expected NaN during warmup, got %v", i, z[i])
		}
	}
	if math.IsNaN(z[9]) {
		t.Error("Index 9: expected defined z-score once minimum periods reached")
	}
}

func TestRollingZScoresConstantSpread(t *testing.T) {
	spread := []float64{3, 3, 3, 3, 3, 3}
	for i, v := range RollingZScores(spread, 4) {
		if !math.IsNaN(v) {
			t.Errorf("Index %d: expected NaN on zero variance, got %v", i, v)
		}
	}
}

func TestRollingZScoresTrailingWindow(t *testing.T) {
	// A level shift far in the past must fall out of the trailing window
	spread := make([]float64, 40)
	for i := range spread {
		if i < 10 {
			spread[i] = 100
		} else {
			spread[i] = float64(i % 3)
		}
	}
	z := RollingZScores(spread, 10)

	last := z[len(z)-1]
	if math.IsNaN(last) {
		t.Fatal("Expected defined z-score at the end")
	}
	if math.Abs(last) > 3 {
		t.Errorf("Old level shift leaked into the window: z = %v", last)
	}
}
