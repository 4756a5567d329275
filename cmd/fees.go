package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quantpair/statarb-tui/internal/fees"
	"github.com/quantpair/statarb-tui/internal/models"
	"github.com/quantpair/statarb-tui/pkg/formatters"
)

var (
	feeQty      int64
	feeBuy      float64
	feeSell     float64
	feeType     string
	feeExchange string
	feeDP       bool
	feeMinPrice bool
	feeBisect   bool
)

func init() {
	feesCmd.Flags().Int64Var(&feeQty, "qty", 0, "number of shares")
	feesCmd.Flags().Float64Var(&feeBuy, "buy", 0, "buy price per share")
	feesCmd.Flags().Float64Var(&feeSell, "sell", 0, "sell price per share")
	feesCmd.Flags().StringVar(&feeType, "type", "intraday", "trade type: delivery or intraday")
	feesCmd.Flags().StringVar(&feeExchange, "exchange", "NSE", "exchange: NSE or BSE")
	feesCmd.Flags().BoolVar(&feeDP, "dp", false, "include DP charges (selling from demat)")
	feesCmd.Flags().BoolVar(&feeMinPrice, "min-price", false, "also print the minimum profitable sell price")
	feesCmd.Flags().BoolVar(&feeBisect, "bisect", false, "use bisection instead of the fixed-step search for --min-price")
	_ = feesCmd.MarkFlagRequired("qty")
	_ = feesCmd.MarkFlagRequired("buy")
	rootCmd.AddCommand(feesCmd)
}

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Break down all charges for a round-trip trade",
	RunE:  runFees,
}

func parseTradeType(s string) (models.TradeType, error) {
	switch models.TradeType(s) {
	case models.Delivery, models.Intraday:
		return models.TradeType(s), nil
	}
	return "", fmt.Errorf("unknown trade type %q (want delivery or intraday)", s)
}

func parseExchange(s string) (models.Exchange, error) {
	switch models.Exchange(s) {
	case models.NSE, models.BSE:
		return models.Exchange(s), nil
	}
	return "", fmt.Errorf("unknown exchange %q (want NSE or BSE)", s)
}

func runFees(cmd *cobra.Command, args []string) error {
	if feeQty <= 0 || feeBuy <= 0 {
		return fmt.Errorf("--qty and --buy must be positive")
	}

	tradeType, err := parseTradeType(feeType)
	if err != nil {
		return err
	}
	exchange, err := parseExchange(feeExchange)
	if err != nil {
		return err
	}

	buy := decimal.NewFromFloat(feeBuy)
	minPct := decimal.NewFromFloat(cfg.MinProfitThreshold * 100)

	if feeSell > 0 {
		breakdown := feeValidator.Calculator().RoundTrip(
			feeQty, buy, decimal.NewFromFloat(feeSell), tradeType, exchange, feeDP)
		fmt.Println(formatters.FormatFeeTable(breakdown))
	}

	if feeMinPrice || feeSell <= 0 {
		method := fees.SolveWalk
		if feeBisect {
			method = fees.SolveBisect
		}
		minPrice := feeValidator.MinimumProfitablePriceWith(method, feeQty, buy, minPct, tradeType, exchange)
		fmt.Printf("minimum profitable sell price (>= %s%%): Rs %s\n",
			minPct.StringFixed(3), minPrice.StringFixed(2))
	}

	return nil
}
