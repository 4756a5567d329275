package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quantpair/statarb-tui/pkg/formatters"
)

var (
	checkQty1      int64
	checkQty2      int64
	checkEntry1    float64
	checkEntry2    float64
	checkExit1     float64
	checkExit2     float64
	checkDirection string
	checkType      string
	checkExchange  string
)

func init() {
	checkCmd.Flags().Int64Var(&checkQty1, "qty1", 0, "shares on the first leg")
	checkCmd.Flags().Int64Var(&checkQty2, "qty2", 0, "shares on the second leg")
	checkCmd.Flags().Float64Var(&checkEntry1, "entry1", 0, "entry price of the first leg")
	checkCmd.Flags().Float64Var(&checkEntry2, "entry2", 0, "entry price of the second leg")
	checkCmd.Flags().Float64Var(&checkExit1, "exit1", 0, "exit price of the first leg")
	checkCmd.Flags().Float64Var(&checkExit2, "exit2", 0, "exit price of the second leg")
	checkCmd.Flags().StringVar(&checkDirection, "direction", "long", "pair direction: long or short")
	checkCmd.Flags().StringVar(&checkType, "type", "intraday", "trade type: delivery or intraday")
	checkCmd.Flags().StringVar(&checkExchange, "exchange", "NSE", "exchange: NSE or BSE")
	_ = checkCmd.MarkFlagRequired("qty1")
	_ = checkCmd.MarkFlagRequired("qty2")
	_ = checkCmd.MarkFlagRequired("entry1")
	_ = checkCmd.MarkFlagRequired("entry2")
	_ = checkCmd.MarkFlagRequired("exit1")
	_ = checkCmd.MarkFlagRequired("exit2")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a proposed pair round trip against fees",
	Long: `Composes the full fee model over both legs of a proposed pair trade
and reports whether the round trip clears the minimum profit threshold.
A long pair shorts leg 1 and buys leg 2; a short pair is the mirror.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkQty1 <= 0 || checkQty2 <= 0 {
		return fmt.Errorf("--qty1 and --qty2 must be positive")
	}
	if checkEntry1 <= 0 || checkEntry2 <= 0 || checkExit1 <= 0 || checkExit2 <= 0 {
		return fmt.Errorf("all entry and exit prices must be positive")
	}

	direction := 1
	switch checkDirection {
	case "long":
	case "short":
		direction = -1
	default:
		return fmt.Errorf("unknown direction %q (want long or short)", checkDirection)
	}

	tradeType, err := parseTradeType(checkType)
	if err != nil {
		return err
	}
	exchange, err := parseExchange(checkExchange)
	if err != nil {
		return err
	}

	result := feeValidator.ValidatePairTrade(checkQty1, checkQty2,
		decimal.NewFromFloat(checkEntry1), decimal.NewFromFloat(checkEntry2),
		decimal.NewFromFloat(checkExit1), decimal.NewFromFloat(checkExit2),
		direction, tradeType, exchange)

	fmt.Println(formatters.FormatPairCheck(result))
	return nil
}
