package statarb

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/quantpair/statarb-tui/internal/models"
)

// maxScreenWorkers bounds the fan-out regardless of core count; the pipeline
// is network-bound on the first fetch of each symbol.
const maxScreenWorkers = 8

// ScreenResult partitions the universe after a screening pass. Viable pairs
// are sorted ascending by p-value (lower = stronger equilibrium evidence).
type ScreenResult struct {
	Viable   []models.PairAnalysis
	Rejected []models.PairAnalysis
}

// Screen fans the pipeline out over the configured universe with a bounded
// worker pool, waits for all workers, then partitions and ranks. A failure in
// one worker never cancels its siblings; the failed pair lands in Rejected
// with its reason.
func (e *Engine) Screen(ctx context.Context) ScreenResult {
	pairs := e.cfg.Pairs
	results := make([]models.PairAnalysis, len(pairs))

	workers := runtime.NumCPU()
	if workers > maxScreenWorkers {
		workers = maxScreenWorkers
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.analyzeSafe(ctx, pairs[i].Symbol1, pairs[i].Symbol2)
			}
		}()
	}
	for i := range pairs {
		jobs <- i
	}
	close(jobs)
	wg.Wait() // barrier before ranking

	var out ScreenResult
	for _, r := range results {
		if r.Viable() {
			out.Viable = append(out.Viable, r)
			e.logger.Info("viable pair",
				zap.String("pair", r.Pair()),
				zap.Float64("p_value", r.Cointegration.PValue))
		} else {
			out.Rejected = append(out.Rejected, r)
			e.logger.Debug("pair rejected",
				zap.String("pair", r.Pair()),
				zap.String("reason", rejectReason(r)))
		}
	}

	// Deterministic ranking regardless of worker completion order
	sort.SliceStable(out.Viable, func(i, j int) bool {
		if out.Viable[i].Cointegration.PValue != out.Viable[j].Cointegration.PValue {
			return out.Viable[i].Cointegration.PValue < out.Viable[j].Cointegration.PValue
		}
		return out.Viable[i].Pair() < out.Viable[j].Pair()
	})

	e.logger.Info("screening complete",
		zap.Int("universe", len(pairs)),
		zap.Int("viable", len(out.Viable)))

	return out
}

// analyzeSafe isolates panics from numerical code to the failing pair
func (e *Engine) analyzeSafe(ctx context.Context, symbol1, symbol2 string) (analysis models.PairAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			analysis = models.PairAnalysis{
				Symbol1:     symbol1,
				Symbol2:     symbol2,
				CurrentZ:    math.NaN(),
				ErrorReason: fmt.Sprintf("analysis panic: %v", r),
			}
			e.logger.Error("pair analysis panicked",
				zap.String("pair", analysis.Pair()),
				zap.Any("panic", r))
		}
	}()
	return e.AnalyzePair(ctx, symbol1, symbol2)
}

func rejectReason(r models.PairAnalysis) string {
	switch {
	case r.ErrorReason != "":
		return r.ErrorReason
	case r.Cointegration.ErrorReason != "":
		return r.Cointegration.ErrorReason
	default:
		return fmt.Sprintf("p-value %.4f above threshold", r.Cointegration.PValue)
	}
}
