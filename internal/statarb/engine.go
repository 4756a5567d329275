package statarb

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/quantpair/statarb-tui/internal/cache"
	"github.com/quantpair/statarb-tui/internal/config"
	"github.com/quantpair/statarb-tui/internal/marketdata"
	"github.com/quantpair/statarb-tui/internal/models"
)

// Engine runs the analysis pipeline for pairs: fetch, align, cointegration,
// spread, z-score, signals. It holds no mutable trading state; every call
// recomputes from fresh inputs.
type Engine struct {
	cfg      *config.Config
	provider marketdata.Provider
	cache    *cache.SeriesCache
	logger   *zap.Logger
}

// New creates an engine. The cache is optional; pass nil to fetch directly.
func New(cfg *config.Config, provider marketdata.Provider, seriesCache *cache.SeriesCache, logger *zap.Logger) *Engine {
	return &Engine{cfg: cfg, provider: provider, cache: seriesCache, logger: logger}
}

// Thresholds returns the configured signal thresholds
func (e *Engine) Thresholds() Thresholds {
	return Thresholds{
		Entry:    e.cfg.ZScoreEntry,
		Exit:     e.cfg.ZScoreExit,
		StopLoss: e.cfg.StopLossMultiplier,
	}
}

// FlushCache drops cached price series so the next cycle refetches
func (e *Engine) FlushCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

func (e *Engine) fetch(ctx context.Context, symbol string) (models.PriceSeries, error) {
	if e.cache != nil {
		return e.cache.Fetch(ctx, e.provider, symbol, e.cfg.LookbackDays)
	}
	return e.provider.DailyCloses(ctx, symbol, e.cfg.LookbackDays)
}

// AnalyzePair runs the full pipeline for one pair. Failures of any kind are
// reported on the result, never raised, so a bad pair cannot abort a
// screening pass.
func (e *Engine) AnalyzePair(ctx context.Context, symbol1, symbol2 string) models.PairAnalysis {
	analysis := models.PairAnalysis{
		Symbol1:     symbol1,
		Symbol2:     symbol2,
		CurrentZ:    math.NaN(),
		LastUpdated: time.Now(),
	}

	series1, err := e.fetch(ctx, symbol1)
	if err != nil {
		analysis.ErrorReason = fmt.Sprintf("fetch %s: %v", symbol1, err)
		return analysis
	}
	series2, err := e.fetch(ctx, symbol2)
	if err != nil {
		analysis.ErrorReason = fmt.Sprintf("fetch %s: %v", symbol2, err)
		return analysis
	}
	if series1.Empty() || series2.Empty() {
		analysis.ErrorReason = "no data available"
		return analysis
	}

	aligned := AlignSeries(series1, series2)
	analysis.DataPoints = aligned.Len()

	if aligned.Len() >= 2 {
		analysis.Correlation = stat.Correlation(aligned.Price1, aligned.Price2, nil)
	}
	if aligned.Len() >= minObservations && math.Abs(analysis.Correlation) < e.cfg.MinCorrelation {
		analysis.Cointegration = models.CointegrationResult{
			PValue:      1.0,
			SampleSize:  aligned.Len(),
			ErrorReason: fmt.Sprintf("correlation %.3f below minimum %.3f", analysis.Correlation, e.cfg.MinCorrelation),
		}
		return analysis
	}

	analysis.Cointegration = TestCointegration(aligned, e.cfg.MaxCointPValue)
	if !analysis.Cointegration.IsCointegrated {
		return analysis
	}

	hedge := *analysis.Cointegration.HedgeRatio
	spread := BuildSpread(aligned.Price1, aligned.Price2, hedge, analysis.Cointegration.Intercept)
	z := RollingZScores(spread, e.cfg.RollingWindow)

	fold := Signals(aligned.Times, spread, z, e.Thresholds())
	if fold.StopLosses > 0 {
		e.logger.Warn("stop losses in signal history",
			zap.String("pair", analysis.Pair()),
			zap.Int("count", fold.StopLosses))
	}

	analysis.SpreadMean = stat.Mean(spread, nil)
	analysis.SpreadStd = stat.StdDev(spread, nil)
	analysis.CurrentZ = z[len(z)-1]
	analysis.State = fold.Final
	analysis.EntrySignals = fold.EntryCount
	analysis.StopLosses = fold.StopLosses
	analysis.Trace = fold.Trace
	analysis.Recommendation = CurrentRecommendation(analysis.CurrentZ, e.Thresholds())

	return analysis
}
