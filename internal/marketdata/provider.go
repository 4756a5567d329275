package marketdata

import (
	"context"

	"github.com/quantpair/statarb-tui/internal/models"
)

// Provider supplies daily closing prices for a symbol over a lookback window.
// An empty series means the data is unavailable for this cycle; implementations
// reserve errors for transport failures.
type Provider interface {
	DailyCloses(ctx context.Context, symbol string, lookbackDays int) (models.PriceSeries, error)
}
