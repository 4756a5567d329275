package statarb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quantpair/statarb-tui/internal/models"
)

// Monitor re-runs screening on a fixed interval until its context is
// canceled. A failed cycle logs and backs off instead of terminating the
// loop. Signal changes on the tracked (top-ranked) pairs are logged.
type Monitor struct {
	engine   *Engine
	interval time.Duration
	backoff  time.Duration
	maxTrack int
	logger   *zap.Logger
	onCycle  func(ScreenResult)

	lastSignals map[string]models.SignalKind
}

// NewMonitor creates a monitoring loop over the engine's configuration.
// onCycle, if non-nil, receives each completed screening result.
func NewMonitor(engine *Engine, onCycle func(ScreenResult)) *Monitor {
	return &Monitor{
		engine:      engine,
		interval:    engine.cfg.RefreshInterval,
		backoff:     engine.cfg.ErrorBackoff,
		maxTrack:    engine.cfg.MaxPairsActive,
		logger:      engine.logger,
		onCycle:     onCycle,
		lastSignals: make(map[string]models.SignalKind),
	}
}

// Run blocks until ctx is canceled, screening once per interval
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitoring started",
		zap.Duration("interval", m.interval),
		zap.Int("universe", len(m.engine.cfg.Pairs)))

	for {
		wait := m.interval
		if err := m.runCycle(ctx); err != nil {
			if ctx.Err() != nil {
				m.logger.Info("monitoring stopped")
				return ctx.Err()
			}
			m.logger.Error("screening cycle failed, backing off", zap.Error(err))
			wait = m.backoff
		}

		select {
		case <-ctx.Done():
			m.logger.Info("monitoring stopped")
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (m *Monitor) runCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panic: %v", r)
		}
	}()

	m.engine.FlushCache()
	started := time.Now()
	result := m.engine.Screen(ctx)

	m.trackSignals(result)

	m.logger.Info("cycle complete",
		zap.Int("viable", len(result.Viable)),
		zap.Int("rejected", len(result.Rejected)),
		zap.Duration("elapsed", time.Since(started)))

	if m.onCycle != nil {
		m.onCycle(result)
	}
	return ctx.Err()
}

// trackSignals watches the top-ranked pairs and logs recommendation changes
func (m *Monitor) trackSignals(result ScreenResult) {
	top := result.Viable
	if len(top) > m.maxTrack {
		top = top[:m.maxTrack]
	}

	seen := make(map[string]models.SignalKind, len(top))
	for _, p := range top {
		key := p.Pair()
		seen[key] = p.Recommendation.Signal
		if prev, ok := m.lastSignals[key]; ok && prev != p.Recommendation.Signal {
			m.logger.Info("signal changed",
				zap.String("pair", key),
				zap.String("from", string(prev)),
				zap.String("to", string(p.Recommendation.Signal)),
				zap.Float64("strength", p.Recommendation.Strength))
		}
	}
	m.lastSignals = seen
}
