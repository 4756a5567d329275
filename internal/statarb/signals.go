package statarb

import (
	"fmt"
	"math"
	"time"

	"github.com/quantpair/statarb-tui/internal/models"
)

// Thresholds are the z-score levels driving the signal state machine
type Thresholds struct {
	Entry    float64
	Exit     float64
	StopLoss float64
}

// FoldResult is the outcome of running the state machine over a z-score series
type FoldResult struct {
	Trace      []models.TraceStep
	Final      models.SignalState
	EntryCount int
	StopLosses int
}

// Signals folds the state machine over the z-score series in time order and
// returns an immutable trace. The cycle is Flat -> {LongPair, ShortPair} ->
// Flat; a position never flips to the opposite side without passing through
// Flat, and exit/stop-loss checks run before any entry check. Steps with an
// undefined z-score hold the current position without signaling. The first
// step is recorded but never evaluated, matching one-step-behind signal
// semantics.
func Signals(times []time.Time, spread, z []float64, th Thresholds) FoldResult {
	trace := make([]models.TraceStep, 0, len(z))
	position := models.Flat
	result := FoldResult{}

	for i := range z {
		step := models.TraceStep{
			Spread:   spread[i],
			Z:        z[i],
			Position: position,
		}
		if times != nil {
			step.Time = times[i]
		}

		if i == 0 || math.IsNaN(z[i]) {
			trace = append(trace, step)
			continue
		}

		zv := z[i]
		switch {
		case position == models.Flat:
			if zv > th.Entry {
				// Spread rich: short the pair (sell leg2, buy leg1)
				step.Signal = -1
				position = models.ShortPair
			} else if zv < -th.Entry {
				step.Signal = 1
				position = models.LongPair
			}
		default:
			if math.Abs(zv) < th.Exit {
				// Mean reversion achieved
				step.Signal = -int(position)
				position = models.Flat
			} else if math.Abs(zv) > th.StopLoss {
				step.Signal = -int(position)
				position = models.Flat
				result.StopLosses++
			}
		}

		step.Position = position
		trace = append(trace, step)
	}

	// Derived entry/exit flags, each relative to the previous step
	for i := 1; i < len(trace); i++ {
		cur, prev := &trace[i], trace[i-1]
		cur.Entry = cur.Signal != 0 && cur.Signal != prev.Signal
		cur.Exit = cur.Signal != 0 && prev.Position != models.Flat
		if cur.Entry {
			result.EntryCount++
		}
	}

	result.Trace = trace
	result.Final = position
	return result
}

// CurrentRecommendation derives the present call on a pair from the latest
// z-score alone, independent of the historical trace. Strength is
// min(|z|/entry, 3) for entries, 1 for a close, 0 otherwise.
func CurrentRecommendation(z float64, th Thresholds) models.Recommendation {
	if math.IsNaN(z) {
		return models.Recommendation{
			Signal:      models.SignalNoData,
			Strength:    0,
			Description: "No data available",
		}
	}

	switch {
	case z > th.Entry:
		return models.Recommendation{
			Signal:      models.SignalShortPair,
			Strength:    math.Min(math.Abs(z)/th.Entry, 3.0),
			Description: fmt.Sprintf("Short pair (z-score: %.2f)", z),
			Action:      "Sell stock2, Buy stock1",
		}
	case z < -th.Entry:
		return models.Recommendation{
			Signal:      models.SignalLongPair,
			Strength:    math.Min(math.Abs(z)/th.Entry, 3.0),
			Description: fmt.Sprintf("Long pair (z-score: %.2f)", z),
			Action:      "Buy stock2, Sell stock1",
		}
	case math.Abs(z) < th.Exit:
		return models.Recommendation{
			Signal:      models.SignalClose,
			Strength:    1.0,
			Description: fmt.Sprintf("Close position (z-score: %.2f)", z),
			Action:      "Mean reversion detected",
		}
	default:
		return models.Recommendation{
			Signal:      models.SignalHold,
			Strength:    0,
			Description: fmt.Sprintf("Hold current position (z-score: %.2f)", z),
			Action:      "No action required",
		}
	}
}
