package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantpair/statarb-tui/internal/models"
	"github.com/quantpair/statarb-tui/pkg/formatters"
)

var (
	screenCSVFile string
	screenShowAll bool
)

func init() {
	screenCmd.Flags().StringVar(&screenCSVFile, "csv", "", "write ranked pairs to a CSV file")
	screenCmd.Flags().BoolVar(&screenShowAll, "all", false, "also list rejected pairs with reasons")
	rootCmd.AddCommand(screenCmd)
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen the pair universe for cointegration",
	Long: `Runs the full analysis pipeline over every configured pair and ranks
the cointegrated survivors by p-value (ascending, lower is stronger).`,
	RunE: runScreen,
}

func runScreen(cmd *cobra.Command, args []string) error {
	result := engine.Screen(cmd.Context())

	fmt.Println(formatters.FormatPairsTable(result.Viable))
	fmt.Printf("%d viable of %d screened\n", len(result.Viable), len(cfg.Pairs))

	if screenShowAll && len(result.Rejected) > 0 {
		fmt.Println()
		fmt.Println(formatters.FormatRejectedTable(result.Rejected, rejectReason))
	}

	if screenCSVFile != "" {
		csv := formatters.PairsCSV(result.Viable) + "\n"
		if err := os.WriteFile(screenCSVFile, []byte(csv), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", screenCSVFile, err)
		}
		fmt.Printf("wrote %s\n", screenCSVFile)
	}

	return nil
}

func rejectReason(p models.PairAnalysis) string {
	switch {
	case p.ErrorReason != "":
		return p.ErrorReason
	case p.Cointegration.ErrorReason != "":
		return p.Cointegration.ErrorReason
	default:
		return fmt.Sprintf("p-value %.4f above %.2f", p.Cointegration.PValue, cfg.MaxCointPValue)
	}
}
