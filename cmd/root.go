package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quantpair/statarb-tui/internal/cache"
	"github.com/quantpair/statarb-tui/internal/config"
	"github.com/quantpair/statarb-tui/internal/fees"
	"github.com/quantpair/statarb-tui/internal/marketdata"
	"github.com/quantpair/statarb-tui/internal/statarb"
)

var (
	// Global instances
	cfgFile      string
	cfg          *config.Config
	logger       *zap.Logger
	provider     marketdata.Provider
	seriesCache  *cache.SeriesCache
	engine       *statarb.Engine
	feeValidator *fees.Validator
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "statarb-tui",
	Short: "Statistical arbitrage pair screener for the terminal",
	Long: `statarb-tui screens a universe of stock pairs for cointegrated,
mean-reverting spreads, generates z-score trading signals, and gates
every decision on a full Zerodha fee model.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (pair universe and threshold overrides)")
}

// initLogger configures zap: default INFO, DEBUG if DEBUG env is truthy
func initLogger() {
	verbose := false
	if v := os.Getenv("DEBUG"); v == "true" || v == "1" || v == "yes" {
		verbose = true
	}

	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	var err error
	logger, err = zcfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
}

// initializeApp sets up all dependencies. Configuration problems are fatal
// here, before any screening starts.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	provider = marketdata.NewYahooClient(logger)
	seriesCache = cache.New(cfg.RefreshInterval)
	engine = statarb.New(cfg, provider, seriesCache, logger)
	feeValidator = fees.NewValidator(cfg)

	logger.Debug("initialized",
		zap.Int("pairs", len(cfg.Pairs)),
		zap.Float64("z_entry", cfg.ZScoreEntry),
		zap.Float64("z_exit", cfg.ZScoreExit))

	return nil
}
