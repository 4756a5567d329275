package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Pair is one candidate in the screening universe
type Pair struct {
	Symbol1 string `mapstructure:"symbol1"`
	Symbol2 string `mapstructure:"symbol2"`
}

// Config holds all application configuration
type Config struct {
	// Signal thresholds
	ZScoreEntry        float64
	ZScoreExit         float64
	StopLossMultiplier float64
	RollingWindow      int

	// Screening
	MaxCointPValue float64
	MinCorrelation float64
	MaxPairsActive int
	LookbackDays   int

	// Capital allocation
	CapitalPerPair     float64
	MaxPositionSize    float64
	MinProfitThreshold float64

	// Monitoring loop
	RefreshInterval time.Duration
	ErrorBackoff    time.Duration

	// Zerodha tariff (rates as fractions of turnover unless noted)
	IntradayBrokeragePct float64
	IntradayBrokerageCap float64 // Rs per order
	STTDeliveryBuy       float64
	STTDeliverySell      float64
	STTIntradaySell      float64
	NSETransactionRate   float64
	BSETransactionRate   float64
	SEBIRate             float64
	StampDutyDelivery    float64
	StampDutyIntraday    float64
	GSTRate              float64
	DPCharges            float64 // Rs per scrip

	// Candidate universe
	Pairs []Pair
}

// Load reads configuration from the environment, applies an optional YAML
// file on top (pair universe and threshold overrides), and validates the
// result. Invalid configuration is fatal at startup, never mid-screen.
func Load(configFile string) (*Config, error) {
	// Try to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		ZScoreEntry:        getEnvFloat("Z_SCORE_ENTRY", 2.0),
		ZScoreExit:         getEnvFloat("Z_SCORE_EXIT", 0.5),
		StopLossMultiplier: getEnvFloat("STOP_LOSS_MULTIPLIER", 2.5),
		RollingWindow:      getEnvInt("ROLLING_WINDOW", 20),

		MaxCointPValue: getEnvFloat("MAX_COINTEGRATION_PVALUE", 0.05),
		MinCorrelation: getEnvFloat("MIN_CORRELATION", 0.1),
		MaxPairsActive: getEnvInt("MAX_PAIRS_ACTIVE", 3),
		LookbackDays:   getEnvInt("LOOKBACK_DAYS", 365),

		CapitalPerPair:     getEnvFloat("CAPITAL_PER_PAIR", 100000),
		MaxPositionSize:    getEnvFloat("MAX_POSITION_SIZE", 0.02),
		MinProfitThreshold: getEnvFloat("MIN_PROFIT_THRESHOLD", 0.001),

		RefreshInterval: time.Duration(getEnvInt("REFRESH_MINUTES", 5)) * time.Minute,
		ErrorBackoff:    time.Duration(getEnvInt("ERROR_BACKOFF_SECONDS", 60)) * time.Second,

		IntradayBrokeragePct: getEnvFloat("INTRADAY_BROKERAGE_PCT", 0.0003),
		IntradayBrokerageCap: getEnvFloat("INTRADAY_BROKERAGE_CAP", 20.0),
		STTDeliveryBuy:       getEnvFloat("STT_DELIVERY_BUY", 0.001),
		STTDeliverySell:      getEnvFloat("STT_DELIVERY_SELL", 0.001),
		STTIntradaySell:      getEnvFloat("STT_INTRADAY_SELL", 0.00025),
		NSETransactionRate:   getEnvFloat("NSE_TRANSACTION_RATE", 297.0/10000000),
		BSETransactionRate:   getEnvFloat("BSE_TRANSACTION_RATE", 375.0/10000000),
		SEBIRate:             getEnvFloat("SEBI_RATE", 10.0/10000000),
		StampDutyDelivery:    getEnvFloat("STAMP_DUTY_DELIVERY", 1500.0/10000000),
		StampDutyIntraday:    getEnvFloat("STAMP_DUTY_INTRADAY", 300.0/10000000),
		GSTRate:              getEnvFloat("GST_RATE", 0.18),
		DPCharges:            getEnvFloat("DP_CHARGES", 13.5),

		Pairs: defaultPairs(),
	}

	if configFile != "" {
		if err := cfg.applyFile(configFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configFile, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile overlays a YAML file: a pairs list replaces the default universe,
// scalar keys override their env/default values.
func (c *Config) applyFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if v.IsSet("pairs") {
		var pairs []Pair
		if err := v.UnmarshalKey("pairs", &pairs); err != nil {
			return fmt.Errorf("parsing pairs: %w", err)
		}
		c.Pairs = pairs
	}

	floatKeys := map[string]*float64{
		"z_score_entry":            &c.ZScoreEntry,
		"z_score_exit":             &c.ZScoreExit,
		"stop_loss_multiplier":     &c.StopLossMultiplier,
		"max_cointegration_pvalue": &c.MaxCointPValue,
		"min_correlation":          &c.MinCorrelation,
		"capital_per_pair":         &c.CapitalPerPair,
		"max_position_size":        &c.MaxPositionSize,
		"min_profit_threshold":     &c.MinProfitThreshold,
	}
	for key, dst := range floatKeys {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}

	intKeys := map[string]*int{
		"rolling_window":   &c.RollingWindow,
		"max_pairs_active": &c.MaxPairsActive,
		"lookback_days":    &c.LookbackDays,
	}
	for key, dst := range intKeys {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	return nil
}

// Validate rejects configurations the pipeline cannot run with
func (c *Config) Validate() error {
	if c.RollingWindow <= 1 {
		return fmt.Errorf("ROLLING_WINDOW must be > 1, got %d", c.RollingWindow)
	}
	if c.ZScoreEntry <= 0 {
		return fmt.Errorf("Z_SCORE_ENTRY must be positive, got %v", c.ZScoreEntry)
	}
	if c.ZScoreExit <= 0 || c.ZScoreExit >= c.ZScoreEntry {
		return fmt.Errorf("Z_SCORE_EXIT must be in (0, Z_SCORE_ENTRY), got %v", c.ZScoreExit)
	}
	if c.StopLossMultiplier <= c.ZScoreEntry {
		return fmt.Errorf("STOP_LOSS_MULTIPLIER must exceed Z_SCORE_ENTRY, got %v", c.StopLossMultiplier)
	}
	if c.MaxCointPValue <= 0 || c.MaxCointPValue >= 1 {
		return fmt.Errorf("MAX_COINTEGRATION_PVALUE must be in (0, 1), got %v", c.MaxCointPValue)
	}
	if c.CapitalPerPair <= 0 {
		return fmt.Errorf("CAPITAL_PER_PAIR must be positive, got %v", c.CapitalPerPair)
	}
	if c.MaxPositionSize <= 0 || c.MaxPositionSize > 1 {
		return fmt.Errorf("MAX_POSITION_SIZE must be in (0, 1], got %v", c.MaxPositionSize)
	}
	if c.LookbackDays < 30 {
		return fmt.Errorf("LOOKBACK_DAYS must be at least 30, got %d", c.LookbackDays)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_MINUTES must be positive")
	}
	for i, p := range c.Pairs {
		if p.Symbol1 == "" || p.Symbol2 == "" || p.Symbol1 == p.Symbol2 {
			return fmt.Errorf("pair %d is invalid: %q / %q", i, p.Symbol1, p.Symbol2)
		}
	}
	return nil
}

// Helper functions
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// defaultPairs is the stock universe screened when no config file is given.
// NSE symbols carry the .NS suffix expected by the data provider.
func defaultPairs() []Pair {
	return []Pair{
		{"HDFCBANK.NS", "ICICIBANK.NS"},
		{"KOTAKBANK.NS", "AXISBANK.NS"},
		{"HDFCBANK.NS", "KOTAKBANK.NS"},
		{"ICICIBANK.NS", "AXISBANK.NS"},
		{"INDUSINDBK.NS", "FEDERALBNK.NS"},
		{"BANDHANBNK.NS", "RBLBANK.NS"},
		{"YESBANK.NS", "IDFCFIRSTB.NS"},
		{"SBIN.NS", "PNB.NS"},
		{"BANKBARODA.NS", "CANFINHOME.NS"},
		{"UNIONBANK.NS", "INDIANB.NS"},
		{"TCS.NS", "INFY.NS"},
		{"WIPRO.NS", "HCLTECH.NS"},
		{"TCS.NS", "WIPRO.NS"},
		{"INFY.NS", "HCLTECH.NS"},
		{"TECHM.NS", "LTI.NS"},
		{"MINDTREE.NS", "MPHASIS.NS"},
		{"COFORGE.NS", "PERSISTENT.NS"},
		{"SUNPHARMA.NS", "DRREDDY.NS"},
		{"CIPLA.NS", "LUPIN.NS"},
		{"AUROPHARMA.NS", "GLENMARK.NS"},
		{"BIOCON.NS", "CADILAHC.NS"},
		{"TORNTPHARM.NS", "ALKEM.NS"},
		{"HINDUNILVR.NS", "ITC.NS"},
		{"NESTLEIND.NS", "BRITANNIA.NS"},
		{"DABUR.NS", "MARICO.NS"},
		{"COLPAL.NS", "GODREJCP.NS"},
		{"TATACONSUM.NS", "UBL.NS"},
		{"MARUTI.NS", "HYUNDAI.NS"},
		{"M&M.NS", "TVSMOTOR.NS"},
		{"HEROMOTOCO.NS", "BAJAJ-AUTO.NS"},
		{"TVSMOTOR.NS", "EICHERMOT.NS"},
		{"BOSCHLTD.NS", "MOTHERSUMI.NS"},
		{"BALKRISIND.NS", "MRF.NS"},
		{"RELIANCE.NS", "ONGC.NS"},
		{"IOC.NS", "BPCL.NS"},
		{"HINDPETRO.NS", "GAIL.NS"},
		{"PETRONET.NS", "IGL.NS"},
		{"POWERGRID.NS", "NTPC.NS"},
		{"TATAPOWER.NS", "ADANIPOWER.NS"},
		{"JSW.NS", "TORNTPOWER.NS"},
	}
}
