package fees

import (
	"github.com/shopspring/decimal"

	"github.com/quantpair/statarb-tui/internal/config"
	"github.com/quantpair/statarb-tui/internal/models"
)

// SolveMethod selects how MinimumProfitablePriceWith searches for the
// break-even sell price
type SolveMethod int

const (
	// SolveWalk is the original fixed-step search: start at buy*1.01 and
	// adjust by 0.01 per iteration, at most 100 iterations. It may return
	// without converging for large price/quantity combinations, in which
	// case the last candidate is returned as-is.
	SolveWalk SolveMethod = iota
	// SolveBisect brackets the break-even price and bisects. Opt-in;
	// the default behavior stays SolveWalk.
	SolveBisect
)

const walkMaxIterations = 100

var (
	walkStep   = decimal.NewFromFloat(0.01)
	walkMargin = decimal.NewFromFloat(0.01)
)

// Validator classifies trades against the configured minimum profit margin
type Validator struct {
	calc *Calculator
	cfg  *config.Config
}

// NewValidator creates a validator sharing the calculator's tariff
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{calc: NewCalculator(cfg), cfg: cfg}
}

// Calculator exposes the underlying fee calculator
func (v *Validator) Calculator() *Calculator { return v.calc }

// IsProfitable reports whether the round trip clears minProfitPercent after
// all charges, along with the net profit and net profit percent.
func (v *Validator) IsProfitable(qty int64, buyPrice, sellPrice decimal.Decimal,
	minProfitPercent decimal.Decimal, tradeType models.TradeType, exchange models.Exchange) (bool, decimal.Decimal, decimal.Decimal) {

	b := v.calc.RoundTrip(qty, buyPrice, sellPrice, tradeType, exchange, false)
	return b.NetProfitPercent.GreaterThanOrEqual(minProfitPercent), b.NetProfit, b.NetProfitPercent
}

// MinimumProfitablePrice finds the lowest sell price clearing
// minProfitPercent, using the default fixed-step walk.
func (v *Validator) MinimumProfitablePrice(qty int64, buyPrice decimal.Decimal,
	minProfitPercent decimal.Decimal, tradeType models.TradeType, exchange models.Exchange) decimal.Decimal {
	return v.MinimumProfitablePriceWith(SolveWalk, qty, buyPrice, minProfitPercent, tradeType, exchange)
}

// MinimumProfitablePriceWith runs the selected search method
func (v *Validator) MinimumProfitablePriceWith(method SolveMethod, qty int64, buyPrice decimal.Decimal,
	minProfitPercent decimal.Decimal, tradeType models.TradeType, exchange models.Exchange) decimal.Decimal {

	if method == SolveBisect {
		return v.bisectPrice(qty, buyPrice, minProfitPercent, tradeType, exchange)
	}
	return v.walkPrice(qty, buyPrice, minProfitPercent, tradeType, exchange)
}

func (v *Validator) walkPrice(qty int64, buyPrice, minProfitPercent decimal.Decimal,
	tradeType models.TradeType, exchange models.Exchange) decimal.Decimal {

	sell := buyPrice.Mul(decimal.NewFromFloat(1.01))

	for i := 0; i < walkMaxIterations; i++ {
		profitable, _, pct := v.IsProfitable(qty, buyPrice, sell, minProfitPercent, tradeType, exchange)
		if profitable {
			if pct.GreaterThan(minProfitPercent.Add(walkMargin)) {
				sell = sell.Sub(walkStep)
			} else {
				break
			}
		} else {
			sell = sell.Add(walkStep)
		}
	}

	return sell.Round(2)
}

func (v *Validator) bisectPrice(qty int64, buyPrice, minProfitPercent decimal.Decimal,
	tradeType models.TradeType, exchange models.Exchange) decimal.Decimal {

	lo := buyPrice
	offset := buyPrice.Mul(decimal.NewFromFloat(0.01))
	hi := buyPrice.Add(offset)

	// Expand the bracket until hi is profitable
	for i := 0; i < 60; i++ {
		if ok, _, _ := v.IsProfitable(qty, buyPrice, hi, minProfitPercent, tradeType, exchange); ok {
			break
		}
		offset = offset.Mul(decimal.NewFromInt(2))
		hi = buyPrice.Add(offset)
	}

	half := decimal.NewFromInt(2)
	tolerance := decimal.NewFromFloat(0.005)
	for i := 0; i < 100 && hi.Sub(lo).GreaterThan(tolerance); i++ {
		mid := lo.Add(hi).Div(half)
		if ok, _, _ := v.IsProfitable(qty, buyPrice, mid, minProfitPercent, tradeType, exchange); ok {
			hi = mid
		} else {
			lo = mid
		}
	}

	return hi.Round(2)
}

// ValidatePairTrade checks a two-leg pair round trip against the configured
// minimum profit threshold. direction is +1 for a long pair (long leg2, short
// leg1) and -1 for a short pair. Fees are composed per leg with buy/sell
// ordered by which side of each leg opens the position.
func (v *Validator) ValidatePairTrade(qty1, qty2 int64,
	entry1, entry2, exit1, exit2 decimal.Decimal, direction int,
	tradeType models.TradeType, exchange models.Exchange) models.PairTradeCheck {

	var leg1, leg2 models.FeeBreakdown
	if direction > 0 {
		// Long pair: leg1 is shorted (sell at entry, cover at exit),
		// leg2 is bought then sold.
		leg1 = v.calc.RoundTrip(qty1, exit1, entry1, tradeType, exchange, false)
		leg2 = v.calc.RoundTrip(qty2, entry2, exit2, tradeType, exchange, false)
	} else {
		leg1 = v.calc.RoundTrip(qty1, entry1, exit1, tradeType, exchange, false)
		leg2 = v.calc.RoundTrip(qty2, exit2, entry2, tradeType, exchange, false)
	}

	totalFees := leg1.TotalCharges.Add(leg2.TotalCharges)
	gross := leg1.GrossProfit.Add(leg2.GrossProfit)
	net := gross.Sub(totalFees)

	investment := entry1.Mul(decimal.NewFromInt(qty1)).Add(entry2.Mul(decimal.NewFromInt(qty2)))
	netPct := decimal.Zero
	if investment.IsPositive() {
		netPct = net.Div(investment).Mul(decimal.NewFromInt(100)).Round(3)
	}

	minPct := decimal.NewFromFloat(v.cfg.MinProfitThreshold * 100)
	profitable := netPct.GreaterThanOrEqual(minPct)

	recommendation := "SKIP"
	if profitable {
		recommendation = "EXECUTE"
	}

	return models.PairTradeCheck{
		IsProfitable:     profitable,
		GrossProfit:      gross,
		TotalFees:        totalFees,
		NetProfit:        net,
		NetProfitPercent: netPct,
		TotalInvestment:  investment,
		Leg1Fees:         leg1.TotalCharges,
		Leg2Fees:         leg2.TotalCharges,
		Recommendation:   recommendation,
	}
}
