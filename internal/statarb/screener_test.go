package statarb

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/quantpair/statarb-tui/internal/config"
	"github.com/quantpair/statarb-tui/internal/models"
)

func TestScreenPartitionsUniverse(t *testing.T) {
	good1, good2 := pairSeries(200, 2, 10, 41)
	short1, short2 := pairSeries(10, 2, 10, 42)

	provider := &fakeProvider{
		series: map[string]models.PriceSeries{
			"G1": good1, "G2": good2,
			"S1": short1, "S2": short2,
		},
		errs: map[string]error{"E1": errors.New("symbol not found")},
	}

	cfg := testEngineConfig()
	cfg.Pairs = []config.Pair{
		{Symbol1: "G1", Symbol2: "G2"},
		{Symbol1: "S1", Symbol2: "S2"},
		{Symbol1: "E1", Symbol2: "G2"},
	}
	engine := New(cfg, provider, nil, zap.NewNop())

	result := engine.Screen(context.Background())

	if len(result.Viable) != 1 {
		t.Fatalf("Expected 1 viable pair, got %d", len(result.Viable))
	}
	if result.Viable[0].Pair() != "G1 - G2" {
		t.Errorf("Wrong viable pair: %s", result.Viable[0].Pair())
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("Expected 2 rejected pairs, got %d", len(result.Rejected))
	}

	reasons := map[string]string{}
	for _, r := range result.Rejected {
		reasons[r.Pair()] = rejectReason(r)
	}
	if !strings.Contains(reasons["S1 - S2"], "Insufficient data") {
		t.Errorf("Short pair reason: %q", reasons["S1 - S2"])
	}
	if !strings.Contains(reasons["E1 - G2"], "symbol not found") {
		t.Errorf("Errored pair reason: %q", reasons["E1 - G2"])
	}
}

func TestScreenFailureIsolation(t *testing.T) {
	good1, good2 := pairSeries(200, 1.5, 5, 51)
	provider := &fakeProvider{
		series: map[string]models.PriceSeries{"G1": good1, "G2": good2},
		errs:   map[string]error{"BAD": errors.New("upstream 500")},
	}

	cfg := testEngineConfig()
	cfg.Pairs = []config.Pair{
		{Symbol1: "BAD", Symbol2: "G2"},
		{Symbol1: "G1", Symbol2: "G2"},
	}
	engine := New(cfg, provider, nil, zap.NewNop())

	result := engine.Screen(context.Background())

	if len(result.Viable) != 1 {
		t.Fatalf("A failing pair must not take down its siblings: viable %d", len(result.Viable))
	}
}

func TestScreenRankingDeterministic(t *testing.T) {
	provider := &fakeProvider{series: map[string]models.PriceSeries{}}
	cfg := testEngineConfig()

	// Three cointegrated pairs over distinct symbols
	for i, seed := range []int64{61, 62, 63} {
		s1, s2 := pairSeries(180, 2, 10, seed)
		a := string(rune('A'+i)) + "1"
		b := string(rune('A'+i)) + "2"
		provider.series[a] = s1
		provider.series[b] = s2
		cfg.Pairs = append(cfg.Pairs, config.Pair{Symbol1: a, Symbol2: b})
	}
	engine := New(cfg, provider, nil, zap.NewNop())

	first := engine.Screen(context.Background())
	if len(first.Viable) < 2 {
		t.Fatalf("Expected multiple viable pairs, got %d", len(first.Viable))
	}
	for i := 1; i < len(first.Viable); i++ {
		if first.Viable[i-1].Cointegration.PValue > first.Viable[i].Cointegration.PValue {
			t.Errorf("Viable pairs not sorted by p-value at %d", i)
		}
	}

	second := engine.Screen(context.Background())
	if len(second.Viable) != len(first.Viable) {
		t.Fatalf("Non-deterministic viable count: %d vs %d", len(first.Viable), len(second.Viable))
	}
	for i := range first.Viable {
		if first.Viable[i].Pair() != second.Viable[i].Pair() ||
			first.Viable[i].Cointegration.PValue != second.Viable[i].Cointegration.PValue {
			t.Errorf("Ranking differs between runs at %d: %s vs %s",
				i, first.Viable[i].Pair(), second.Viable[i].Pair())
		}
	}
}

func TestRejectReasonFallsBackToPValue(t *testing.T) {
	r := models.PairAnalysis{Cointegration: models.CointegrationResult{PValue: 0.3}}
	if got := rejectReason(r); !strings.Contains(got, "0.3000") {
		t.Errorf("Expected p-value in reason, got %q", got)
	}
}
