package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantpair/statarb-tui/internal/statarb"
	"github.com/quantpair/statarb-tui/pkg/formatters"
)

var monitorQuiet bool

func init() {
	monitorCmd.Flags().BoolVar(&monitorQuiet, "quiet", false, "suppress per-cycle tables (log only)")
	rootCmd.AddCommand(monitorCmd)
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Re-screen the universe on a fixed interval",
	Long: `Runs the screening pass every REFRESH_MINUTES until interrupted.
A failed cycle logs and backs off instead of stopping the loop.`,
	RunE: runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitor := statarb.NewMonitor(engine, func(result statarb.ScreenResult) {
		if monitorQuiet {
			return
		}
		top := result.Viable
		if len(top) > cfg.MaxPairsActive {
			top = top[:cfg.MaxPairsActive]
		}
		fmt.Println(formatters.FormatPairsTable(top))
	})

	if err := monitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
