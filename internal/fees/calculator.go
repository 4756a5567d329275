package fees

import (
	"github.com/shopspring/decimal"

	"github.com/quantpair/statarb-tui/internal/config"
	"github.com/quantpair/statarb-tui/internal/models"
)

// Calculator applies the configured Zerodha tariff to round-trip trades.
// All methods are pure; rates come from the config snapshot taken at startup.
type Calculator struct {
	cfg *config.Config
}

// NewCalculator creates a fee calculator over the given tariff
func NewCalculator(cfg *config.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

func turnover(qty int64, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(qty))
}

// Brokerage computes the per-leg brokerage: free for delivery, percentage of
// turnover capped per order for intraday.
func (c *Calculator) Brokerage(qty int64, price decimal.Decimal, tradeType models.TradeType) decimal.Decimal {
	if tradeType == models.Delivery {
		return decimal.Zero
	}
	pct := turnover(qty, price).Mul(decimal.NewFromFloat(c.cfg.IntradayBrokeragePct))
	cap := decimal.NewFromFloat(c.cfg.IntradayBrokerageCap)
	if pct.GreaterThan(cap) {
		return cap
	}
	return pct
}

// STT computes Securities Transaction Tax: both legs for delivery,
// sell side only for intraday.
func (c *Calculator) STT(qty int64, buyPrice, sellPrice decimal.Decimal, tradeType models.TradeType) decimal.Decimal {
	if tradeType == models.Delivery {
		buy := turnover(qty, buyPrice).Mul(decimal.NewFromFloat(c.cfg.STTDeliveryBuy))
		sell := turnover(qty, sellPrice).Mul(decimal.NewFromFloat(c.cfg.STTDeliverySell))
		return buy.Add(sell)
	}
	return turnover(qty, sellPrice).Mul(decimal.NewFromFloat(c.cfg.STTIntradaySell))
}

// TransactionCharges computes the per-leg exchange transaction charge
func (c *Calculator) TransactionCharges(qty int64, price decimal.Decimal, exchange models.Exchange) decimal.Decimal {
	rate := c.cfg.NSETransactionRate
	if exchange == models.BSE {
		rate = c.cfg.BSETransactionRate
	}
	return turnover(qty, price).Mul(decimal.NewFromFloat(rate))
}

// SEBICharges computes the per-leg SEBI levy
func (c *Calculator) SEBICharges(qty int64, price decimal.Decimal) decimal.Decimal {
	return turnover(qty, price).Mul(decimal.NewFromFloat(c.cfg.SEBIRate))
}

// StampDuty is levied on the buy side only; the rate depends on trade type
func (c *Calculator) StampDuty(qty int64, buyPrice decimal.Decimal, tradeType models.TradeType) decimal.Decimal {
	rate := c.cfg.StampDutyIntraday
	if tradeType == models.Delivery {
		rate = c.cfg.StampDutyDelivery
	}
	return turnover(qty, buyPrice).Mul(decimal.NewFromFloat(rate))
}

// GST applies to brokerage plus exchange transaction charges
func (c *Calculator) GST(brokerage, transactionCharges decimal.Decimal) decimal.Decimal {
	return brokerage.Add(transactionCharges).Mul(decimal.NewFromFloat(c.cfg.GSTRate))
}

// RoundTrip computes the full breakdown for buying qty shares at buyPrice and
// selling at sellPrice. DP charges are added only when selling from a demat
// holding (withDP).
func (c *Calculator) RoundTrip(qty int64, buyPrice, sellPrice decimal.Decimal,
	tradeType models.TradeType, exchange models.Exchange, withDP bool) models.FeeBreakdown {

	brokerage := c.Brokerage(qty, buyPrice, tradeType).Add(c.Brokerage(qty, sellPrice, tradeType))
	stt := c.STT(qty, buyPrice, sellPrice, tradeType)
	txn := c.TransactionCharges(qty, buyPrice, exchange).Add(c.TransactionCharges(qty, sellPrice, exchange))
	sebi := c.SEBICharges(qty, buyPrice).Add(c.SEBICharges(qty, sellPrice))
	stamp := c.StampDuty(qty, buyPrice, tradeType)
	gst := c.GST(brokerage, txn)

	dp := decimal.Zero
	if withDP {
		dp = decimal.NewFromFloat(c.cfg.DPCharges)
	}

	total := brokerage.Add(stt).Add(txn).Add(sebi).Add(stamp).Add(gst).Add(dp)
	gross := sellPrice.Sub(buyPrice).Mul(decimal.NewFromInt(qty))
	net := gross.Sub(total)
	netPct := net.Div(turnover(qty, buyPrice)).Mul(decimal.NewFromInt(100))

	return models.FeeBreakdown{
		Brokerage:          brokerage.Round(2),
		STT:                stt.Round(2),
		TransactionCharges: txn.Round(2),
		SEBICharges:        sebi.Round(2),
		StampDuty:          stamp.Round(2),
		GST:                gst.Round(2),
		DPCharges:          dp.Round(2),
		TotalCharges:       total.Round(2),
		GrossProfit:        gross.Round(2),
		NetProfit:          net.Round(2),
		NetProfitPercent:   netPct.Round(3),
		Quantity:           qty,
		BuyPrice:           buyPrice,
		SellPrice:          sellPrice,
		TradeType:          tradeType,
		Exchange:           exchange,
	}
}
