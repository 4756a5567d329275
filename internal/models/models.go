package models

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// TradeType distinguishes delivery trades from intraday round trips
type TradeType string

const (
	Delivery TradeType = "delivery"
	Intraday TradeType = "intraday"
)

// Exchange identifies the venue a trade routes through
type Exchange string

const (
	NSE Exchange = "NSE"
	BSE Exchange = "BSE"
)

// PricePoint is a single daily close
type PricePoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// PriceSeries is a time-ordered sequence of closes for one instrument.
// The analysis pipeline borrows it read-only; it is never mutated after capture.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of observations
func (s PriceSeries) Len() int { return len(s.Points) }

// Empty reports whether the provider returned no data
func (s PriceSeries) Empty() bool { return len(s.Points) == 0 }

// Closes returns the close prices in time order
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// CointegrationResult holds the Engle-Granger test outcome plus the OLS fit
// of series2 on series1. HedgeRatio and CriticalValue5 are nil when the test
// could not run (insufficient data or a numeric failure).
type CointegrationResult struct {
	IsCointegrated bool     `json:"is_cointegrated"`
	PValue         float64  `json:"p_value"`
	CriticalValue5 *float64 `json:"critical_value_5pct"`
	HedgeRatio     *float64 `json:"hedge_ratio"`
	Intercept      float64  `json:"intercept"`
	RSquared       float64  `json:"r_squared"`
	SampleSize     int      `json:"sample_size"`
	ErrorReason    string   `json:"error_reason,omitempty"`
}

// SignalState is the position held against a pair's spread
type SignalState int

const (
	Flat      SignalState = 0
	LongPair  SignalState = 1
	ShortPair SignalState = -1
)

func (s SignalState) String() string {
	switch s {
	case LongPair:
		return "long_pair"
	case ShortPair:
		return "short_pair"
	default:
		return "flat"
	}
}

// TraceStep is one evaluated step of the signal state machine.
// Z is NaN while the rolling window has too few observations.
type TraceStep struct {
	Time     time.Time   `json:"time"`
	Spread   float64     `json:"spread"`
	Z        float64     `json:"z"`
	Signal   int         `json:"signal"`
	Position SignalState `json:"position"`
	Entry    bool        `json:"entry"`
	Exit     bool        `json:"exit"`
}

// SignalKind labels the recommendation derived from the latest z-score
type SignalKind string

const (
	SignalNoData    SignalKind = "NO_DATA"
	SignalShortPair SignalKind = "SHORT_PAIR"
	SignalLongPair  SignalKind = "LONG_PAIR"
	SignalClose     SignalKind = "CLOSE_POSITION"
	SignalHold      SignalKind = "HOLD"
)

// Recommendation is the current call on a pair, derived from the latest
// z-score only. Strength is bounded to [0, 3].
type Recommendation struct {
	Signal      SignalKind `json:"signal"`
	Strength    float64    `json:"strength"`
	Description string     `json:"description"`
	Action      string     `json:"action"`
}

// PairAnalysis is the full result of running one pair through the pipeline
type PairAnalysis struct {
	Symbol1        string              `json:"symbol1"`
	Symbol2        string              `json:"symbol2"`
	Cointegration  CointegrationResult `json:"cointegration"`
	Correlation    float64             `json:"correlation"`
	SpreadMean     float64             `json:"spread_mean"`
	SpreadStd      float64             `json:"spread_std"`
	CurrentZ       float64             `json:"current_z"`
	State          SignalState         `json:"state"`
	EntrySignals   int                 `json:"entry_signals"`
	StopLosses     int                 `json:"stop_losses"`
	DataPoints     int                 `json:"data_points"`
	LastUpdated    time.Time           `json:"last_updated"`
	Recommendation Recommendation      `json:"recommendation"`
	Trace          []TraceStep         `json:"-"`
	ErrorReason    string              `json:"error_reason,omitempty"`
}

// Pair renders the conventional "SYM1 - SYM2" label
func (a PairAnalysis) Pair() string {
	return fmt.Sprintf("%s - %s", a.Symbol1, a.Symbol2)
}

// Viable reports whether the pair survived screening
func (a PairAnalysis) Viable() bool {
	return a.ErrorReason == "" && a.Cointegration.IsCointegrated
}

// HasCurrentZ reports whether the latest z-score is defined
func (a PairAnalysis) HasCurrentZ() bool {
	return !math.IsNaN(a.CurrentZ)
}

// FeeBreakdown itemizes every charge on a round-trip trade.
// Component amounts are rounded to 2 decimal places; the totals are computed
// from the unrounded components and rounded at the edge (percent to 3).
type FeeBreakdown struct {
	Brokerage          decimal.Decimal `json:"brokerage"`
	STT                decimal.Decimal `json:"stt"`
	TransactionCharges decimal.Decimal `json:"transaction_charges"`
	SEBICharges        decimal.Decimal `json:"sebi_charges"`
	StampDuty          decimal.Decimal `json:"stamp_duty"`
	GST                decimal.Decimal `json:"gst"`
	DPCharges          decimal.Decimal `json:"dp_charges"`

	TotalCharges     decimal.Decimal `json:"total_charges"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	NetProfitPercent decimal.Decimal `json:"net_profit_percent"`

	Quantity  int64           `json:"quantity"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	TradeType TradeType       `json:"trade_type"`
	Exchange  Exchange        `json:"exchange"`
}

// PositionSizing converts a hedge ratio and a capital budget into whole-share
// quantities for both legs
type PositionSizing struct {
	Qty1               int64           `json:"qty1"`
	Qty2               int64           `json:"qty2"`
	Cost1              decimal.Decimal `json:"cost1"`
	Cost2              decimal.Decimal `json:"cost2"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	HedgeRatio         float64         `json:"hedge_ratio"`
	CapitalUtilization decimal.Decimal `json:"capital_utilization_percent"`
}

// PairTradeCheck is the cost-aware verdict on a proposed two-leg round trip
type PairTradeCheck struct {
	IsProfitable     bool            `json:"is_profitable"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	TotalFees        decimal.Decimal `json:"total_fees"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	NetProfitPercent decimal.Decimal `json:"net_profit_percent"`
	TotalInvestment  decimal.Decimal `json:"total_investment"`
	Leg1Fees         decimal.Decimal `json:"leg1_fees"`
	Leg2Fees         decimal.Decimal `json:"leg2_fees"`
	Recommendation   string          `json:"recommendation"` // EXECUTE or SKIP
}
