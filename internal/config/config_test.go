package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ZScoreEntry != 2.0 {
		t.Errorf("Expected entry threshold 2.0, got %v", cfg.ZScoreEntry)
	}
	if cfg.ZScoreExit != 0.5 {
		t.Errorf("Expected exit threshold 0.5, got %v", cfg.ZScoreExit)
	}
	if cfg.StopLossMultiplier != 2.5 {
		t.Errorf("Expected stop loss 2.5, got %v", cfg.StopLossMultiplier)
	}
	if cfg.RollingWindow != 20 {
		t.Errorf("Expected rolling window 20, got %d", cfg.RollingWindow)
	}
	if cfg.MaxCointPValue != 0.05 {
		t.Errorf("Expected max p-value 0.05, got %v", cfg.MaxCointPValue)
	}
	if cfg.LookbackDays != 365 {
		t.Errorf("Expected lookback 365, got %d", cfg.LookbackDays)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("Expected 5m refresh, got %v", cfg.RefreshInterval)
	}
	if cfg.ErrorBackoff != 60*time.Second {
		t.Errorf("Expected 60s backoff, got %v", cfg.ErrorBackoff)
	}
	if len(cfg.Pairs) != 40 {
		t.Errorf("Expected 40 default pairs, got %d", len(cfg.Pairs))
	}
	if cfg.GSTRate != 0.18 {
		t.Errorf("Expected GST 0.18, got %v", cfg.GSTRate)
	}
	if cfg.DPCharges != 13.5 {
		t.Errorf("Expected DP charges 13.5, got %v", cfg.DPCharges)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("Z_SCORE_ENTRY", "1.8")
	t.Setenv("ROLLING_WINDOW", "30")
	t.Setenv("LOOKBACK_DAYS", "180")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ZScoreEntry != 1.8 {
		t.Errorf("Expected entry 1.8 from env, got %v", cfg.ZScoreEntry)
	}
	if cfg.RollingWindow != 30 {
		t.Errorf("Expected window 30 from env, got %d", cfg.RollingWindow)
	}
	if cfg.LookbackDays != 180 {
		t.Errorf("Expected lookback 180 from env, got %d", cfg.LookbackDays)
	}
}

func TestLoadMalformedEnvFallsBack(t *testing.T) {
	t.Setenv("Z_SCORE_ENTRY", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ZScoreEntry != 2.0 {
		t.Errorf("Expected default after parse failure, got %v", cfg.ZScoreEntry)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.yaml")
	yaml := `z_score_entry: 1.8
lookback_days: 200
pairs:
  - symbol1: TCS.NS
    symbol2: INFY.NS
  - symbol1: HDFCBANK.NS
    symbol2: ICICIBANK.NS
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ZScoreEntry != 1.8 {
		t.Errorf("Expected file override 1.8, got %v", cfg.ZScoreEntry)
	}
	if cfg.LookbackDays != 200 {
		t.Errorf("Expected file override 200, got %d", cfg.LookbackDays)
	}
	if len(cfg.Pairs) != 2 {
		t.Fatalf("Expected the file universe to replace defaults, got %d pairs", len(cfg.Pairs))
	}
	if cfg.Pairs[0].Symbol1 != "TCS.NS" || cfg.Pairs[0].Symbol2 != "INFY.NS" {
		t.Errorf("Unexpected first pair: %+v", cfg.Pairs[0])
	}
	// Untouched keys keep their defaults
	if cfg.ZScoreExit != 0.5 {
		t.Errorf("Expected default exit 0.5, got %v", cfg.ZScoreExit)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"window too small", func(c *Config) { c.RollingWindow = 1 }},
		{"entry not positive", func(c *Config) { c.ZScoreEntry = 0 }},
		{"exit above entry", func(c *Config) { c.ZScoreExit = 3.0 }},
		{"stop below entry", func(c *Config) { c.StopLossMultiplier = 1.5 }},
		{"p-value out of range", func(c *Config) { c.MaxCointPValue = 1.5 }},
		{"capital not positive", func(c *Config) { c.CapitalPerPair = 0 }},
		{"position size above 1", func(c *Config) { c.MaxPositionSize = 1.2 }},
		{"lookback too short", func(c *Config) { c.LookbackDays = 10 }},
		{"self pair", func(c *Config) { c.Pairs = []Pair{{"TCS.NS", "TCS.NS"}} }},
		{"empty symbol", func(c *Config) { c.Pairs = []Pair{{"", "INFY.NS"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation to fail for %s", tt.name)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_FLOAT_KEY", "3.25")
	if got := getEnvFloat("TEST_FLOAT_KEY", 1); got != 3.25 {
		t.Errorf("getEnvFloat: expected 3.25, got %v", got)
	}
	if got := getEnvFloat("TEST_FLOAT_MISSING", 1.5); got != 1.5 {
		t.Errorf("getEnvFloat default: expected 1.5, got %v", got)
	}
	t.Setenv("TEST_INT_KEY", "7")
	if got := getEnvInt("TEST_INT_KEY", 1); got != 7 {
		t.Errorf("getEnvInt: expected 7, got %d", got)
	}
	if got := getEnvInt("TEST_INT_MISSING", 4); got != 4 {
		t.Errorf("getEnvInt default: expected 4, got %d", got)
	}
}
