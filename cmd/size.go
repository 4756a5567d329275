package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantpair/statarb-tui/internal/statarb"
	"github.com/quantpair/statarb-tui/pkg/formatters"
)

var (
	sizePrice1  float64
	sizePrice2  float64
	sizeRatio   float64
	sizeCapital float64
)

func init() {
	sizeCmd.Flags().Float64Var(&sizePrice1, "price1", 0, "current price of the first leg (skips fetching)")
	sizeCmd.Flags().Float64Var(&sizePrice2, "price2", 0, "current price of the second leg (skips fetching)")
	sizeCmd.Flags().Float64Var(&sizeRatio, "ratio", 0, "hedge ratio (skips the cointegration fit)")
	sizeCmd.Flags().Float64Var(&sizeCapital, "capital", 0, "capital budget (default CAPITAL_PER_PAIR)")
	rootCmd.AddCommand(sizeCmd)
}

var sizeCmd = &cobra.Command{
	Use:   "size SYMBOL1 SYMBOL2",
	Short: "Size both legs of a pair trade",
	Long: `Computes whole-share quantities for a market-neutral pair position
within the per-trade exposure limit. Prices and the hedge ratio are taken
from a fresh analysis unless supplied via flags.`,
	Args: cobra.ExactArgs(2),
	RunE: runSize,
}

func runSize(cmd *cobra.Command, args []string) error {
	symbol1, symbol2 := args[0], args[1]

	capital := cfg.CapitalPerPair
	if sizeCapital > 0 {
		capital = sizeCapital
	}

	price1, price2, ratio := sizePrice1, sizePrice2, sizeRatio
	if price1 <= 0 || price2 <= 0 || ratio == 0 {
		analysis := engine.AnalyzePair(cmd.Context(), symbol1, symbol2)
		if analysis.ErrorReason != "" {
			return fmt.Errorf("analyzing %s: %s", analysis.Pair(), analysis.ErrorReason)
		}
		if analysis.Cointegration.HedgeRatio == nil {
			return fmt.Errorf("%s: no hedge ratio (%s)", analysis.Pair(), rejectReason(analysis))
		}
		if ratio == 0 {
			ratio = *analysis.Cointegration.HedgeRatio
		}
		if price1 <= 0 || price2 <= 0 {
			p1, p2, err := latestPrices(cmd, symbol1, symbol2)
			if err != nil {
				return err
			}
			if price1 <= 0 {
				price1 = p1
			}
			if price2 <= 0 {
				price2 = p2
			}
		}
	}

	sizing := statarb.PositionSize(price1, price2, ratio, capital, cfg.MaxPositionSize)
	fmt.Println(formatters.FormatSizingTable(sizing, symbol1, symbol2))
	return nil
}

func latestPrices(cmd *cobra.Command, symbol1, symbol2 string) (float64, float64, error) {
	s1, err := seriesCache.Fetch(cmd.Context(), provider, symbol1, cfg.LookbackDays)
	if err != nil || s1.Empty() {
		return 0, 0, fmt.Errorf("no recent price for %s", symbol1)
	}
	s2, err := seriesCache.Fetch(cmd.Context(), provider, symbol2, cfg.LookbackDays)
	if err != nil || s2.Empty() {
		return 0, 0, fmt.Errorf("no recent price for %s", symbol2)
	}
	return s1.Points[s1.Len()-1].Close, s2.Points[s2.Len()-1].Close, nil
}
