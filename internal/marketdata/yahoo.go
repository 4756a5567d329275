package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"go.uber.org/zap"

	"github.com/quantpair/statarb-tui/internal/models"
)

// YahooClient fetches daily bars from Yahoo Finance. NSE symbols carry the
// .NS suffix, e.g. RELIANCE.NS.
type YahooClient struct {
	logger *zap.Logger
}

// NewYahooClient creates a Yahoo Finance price provider
func NewYahooClient(logger *zap.Logger) *YahooClient {
	return &YahooClient{logger: logger}
}

// DailyCloses returns the daily close series for symbol over the last
// lookbackDays calendar days, oldest first.
func (y *YahooClient) DailyCloses(ctx context.Context, symbol string, lookbackDays int) (models.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return models.PriceSeries{Symbol: symbol}, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	series := models.PriceSeries{Symbol: symbol}
	for iter.Next() {
		bar := iter.Bar()
		px := bar.Close.InexactFloat64()
		if px <= 0 {
			continue
		}
		series.Points = append(series.Points, models.PricePoint{
			Time:  time.Unix(int64(bar.Timestamp), 0).UTC(),
			Close: px,
		})
	}
	if err := iter.Err(); err != nil {
		return models.PriceSeries{Symbol: symbol}, fmt.Errorf("fetching %s: %w", symbol, err)
	}

	if series.Empty() {
		y.logger.Warn("no data returned", zap.String("symbol", symbol))
	} else {
		y.logger.Debug("fetched daily closes",
			zap.String("symbol", symbol),
			zap.Int("points", series.Len()))
	}

	return series, nil
}
