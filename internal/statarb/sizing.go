package statarb

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/quantpair/statarb-tui/internal/models"
)

// PositionSize converts a hedge ratio and capital budget into whole-share
// quantities for both legs. Leg 2 is the base quantity; leg 1 is scaled by
// the hedge ratio. Both floor to at least one share.
func PositionSize(price1, price2, hedgeRatio, capital, maxPositionFraction float64) models.PositionSizing {
	targetExposure := capital * maxPositionFraction
	h := math.Abs(hedgeRatio)

	var qty2 int64
	if denom := h*price1 + price2; denom > 0 {
		qty2 = int64(targetExposure / denom)
	}
	qty1 := int64(h * float64(qty2))

	if qty1 < 1 {
		qty1 = 1
	}
	if qty2 < 1 {
		qty2 = 1
	}

	cost1 := decimal.NewFromFloat(price1).Mul(decimal.NewFromInt(qty1))
	cost2 := decimal.NewFromFloat(price2).Mul(decimal.NewFromInt(qty2))
	total := cost1.Add(cost2)

	utilization := decimal.Zero
	if capital > 0 {
		utilization = total.Div(decimal.NewFromFloat(capital)).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return models.PositionSizing{
		Qty1:               qty1,
		Qty2:               qty2,
		Cost1:              cost1,
		Cost2:              cost2,
		TotalCost:          total,
		HedgeRatio:         hedgeRatio,
		CapitalUtilization: utilization,
	}
}
