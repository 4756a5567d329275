package statarb

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// BuildSpread projects the aligned pair onto its residual series:
// spread[t] = price2[t] - (hedgeRatio*price1[t] + intercept).
// Empty input yields an empty spread.
func BuildSpread(price1, price2 []float64, hedgeRatio, intercept float64) []float64 {
	spread := make([]float64, len(price1))
	for i := range price1 {
		spread[i] = price2[i] - (hedgeRatio*price1[i] + intercept)
	}
	return spread
}

// RollingZScores computes the rolling z-score of the spread over a trailing
// window. Values are NaN until window/2 observations are available, and when
// the trailing standard deviation is zero. The standard deviation is the
// sample estimate (n-1 denominator).
func RollingZScores(spread []float64, window int) []float64 {
	z := make([]float64, len(spread))
	minPeriods := window / 2

	for i := range spread {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		obs := spread[lo : i+1]
		if len(obs) < minPeriods || len(obs) < 2 {
			z[i] = math.NaN()
			continue
		}
		mean := stat.Mean(obs, nil)
		std := stat.StdDev(obs, nil)
		if std == 0 || math.IsNaN(std) {
			z[i] = math.NaN()
			continue
		}
		z[i] = (spread[i] - mean) / std
	}
	return z
}
