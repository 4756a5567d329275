package statarb

import (
	"github.com/quantpair/statarb-tui/internal/models"
	"github.com/quantpair/statarb-tui/internal/stats"
)

// minObservations is the fewest aligned points the cointegration test runs on
const minObservations = 30

// insufficientDataReason matches the wording surfaced to the operator when a
// pair has too little overlapping history
const insufficientDataReason = "Insufficient data"

// TestCointegration runs the Engle-Granger test on an aligned pair and fits
// the hedge regression of price2 on price1. Numeric failures come back as
// ErrorReason on the result, never as a raised error.
func TestCointegration(pair AlignedPair, maxPValue float64) models.CointegrationResult {
	n := pair.Len()
	if n < minObservations {
		return models.CointegrationResult{
			IsCointegrated: false,
			PValue:         1.0,
			SampleSize:     n,
			ErrorReason:    insufficientDataReason,
		}
	}

	outcome, err := stats.EngleGranger(pair.Price1, pair.Price2)
	if err != nil {
		return models.CointegrationResult{
			IsCointegrated: false,
			PValue:         1.0,
			SampleSize:     n,
			ErrorReason:    err.Error(),
		}
	}

	fit, err := stats.LinearFit(pair.Price1, pair.Price2)
	if err != nil {
		return models.CointegrationResult{
			IsCointegrated: false,
			PValue:         1.0,
			SampleSize:     n,
			ErrorReason:    err.Error(),
		}
	}

	hedge := fit.Slope
	crit5 := outcome.Crit5
	return models.CointegrationResult{
		IsCointegrated: outcome.PValue < maxPValue,
		PValue:         outcome.PValue,
		CriticalValue5: &crit5,
		HedgeRatio:     &hedge,
		Intercept:      fit.Intercept,
		RSquared:       fit.R2,
		SampleSize:     n,
	}
}
