package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantpair/statarb-tui/pkg/formatters"
)

var analyzeTrace int

func init() {
	analyzeCmd.Flags().IntVar(&analyzeTrace, "trace", 10, "number of trailing signal steps to show (0 to hide)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL1 SYMBOL2",
	Short: "Deep-dive a single pair",
	Long: `Runs the cointegration test, spread construction and signal state
machine for one pair and prints the full detail, including the trailing
portion of the signal trace.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	analysis := engine.AnalyzePair(cmd.Context(), args[0], args[1])
	fmt.Println(formatters.FormatAnalysis(analysis, analyzeTrace))
	return nil
}
