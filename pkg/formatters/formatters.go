package formatters

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/quantpair/statarb-tui/internal/models"
)

// Colors for different values
var (
	ColorGreen  = text.FgGreen
	ColorRed    = text.FgRed
	ColorYellow = text.FgYellow
	ColorGray   = text.FgHiBlack
)

func signalColor(kind models.SignalKind) text.Color {
	switch kind {
	case models.SignalLongPair:
		return ColorGreen
	case models.SignalShortPair:
		return ColorRed
	case models.SignalClose:
		return ColorYellow
	default:
		return ColorGray
	}
}

func fmtFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func fmtHedge(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *r)
}

// FormatPairsTable renders the ranked viable pairs
func FormatPairsTable(pairs []models.PairAnalysis) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pair", "P-Value", "Hedge Ratio", "Corr", "Z-Score", "Signal", "Strength"})

	for _, p := range pairs {
		t.AppendRow(table.Row{
			p.Pair(),
			fmt.Sprintf("%.4f", p.Cointegration.PValue),
			fmtHedge(p.Cointegration.HedgeRatio),
			fmtFloat(p.Correlation, 2),
			fmtFloat(p.CurrentZ, 2),
			signalColor(p.Recommendation.Signal).Sprint(string(p.Recommendation.Signal)),
			fmtFloat(p.Recommendation.Strength, 2),
		})
	}
	if len(pairs) == 0 {
		t.AppendRow(table.Row{"No viable pairs", "", "", "", "", "", ""})
	}

	return t.Render()
}

// PairsCSV renders the ranked pairs as CSV suitable for a flat file
func PairsCSV(pairs []models.PairAnalysis) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"pair", "p_value", "hedge_ratio", "correlation", "z_score", "signal", "strength"})
	for _, p := range pairs {
		t.AppendRow(table.Row{
			p.Pair(),
			fmt.Sprintf("%.6f", p.Cointegration.PValue),
			fmtHedge(p.Cointegration.HedgeRatio),
			fmtFloat(p.Correlation, 4),
			fmtFloat(p.CurrentZ, 4),
			string(p.Recommendation.Signal),
			fmtFloat(p.Recommendation.Strength, 4),
		})
	}
	return t.RenderCSV()
}

// FormatRejectedTable lists pairs that failed screening and why
func FormatRejectedTable(pairs []models.PairAnalysis, reason func(models.PairAnalysis) string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pair", "Sample", "Reason"})
	for _, p := range pairs {
		t.AppendRow(table.Row{p.Pair(), p.DataPoints, ColorGray.Sprint(reason(p))})
	}
	return t.Render()
}

// FormatAnalysis renders the single-pair deep dive
func FormatAnalysis(a models.PairAnalysis, traceTail int) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})

	t.AppendRow(table.Row{"Pair", a.Pair()})
	if a.ErrorReason != "" {
		t.AppendRow(table.Row{"Error", ColorRed.Sprint(a.ErrorReason)})
		return t.Render()
	}

	coint := ColorRed.Sprint("no")
	if a.Cointegration.IsCointegrated {
		coint = ColorGreen.Sprint("yes")
	}
	t.AppendRow(table.Row{"Cointegrated", coint})
	t.AppendRow(table.Row{"P-Value", fmt.Sprintf("%.4f", a.Cointegration.PValue)})
	if a.Cointegration.CriticalValue5 != nil {
		t.AppendRow(table.Row{"5% Critical Value", fmt.Sprintf("%.4f", *a.Cointegration.CriticalValue5)})
	}
	t.AppendRow(table.Row{"Hedge Ratio", fmtHedge(a.Cointegration.HedgeRatio)})
	t.AppendRow(table.Row{"Intercept", fmt.Sprintf("%.4f", a.Cointegration.Intercept)})
	t.AppendRow(table.Row{"R-Squared", fmt.Sprintf("%.4f", a.Cointegration.RSquared)})
	t.AppendRow(table.Row{"Correlation", fmtFloat(a.Correlation, 4)})
	t.AppendRow(table.Row{"Sample Size", a.Cointegration.SampleSize})
	if a.Cointegration.ErrorReason != "" {
		t.AppendRow(table.Row{"Reason", ColorGray.Sprint(a.Cointegration.ErrorReason)})
	}

	if a.Cointegration.IsCointegrated {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Spread Mean", fmt.Sprintf("%.4f", a.SpreadMean)})
		t.AppendRow(table.Row{"Spread Std", fmt.Sprintf("%.4f", a.SpreadStd)})
		t.AppendRow(table.Row{"Current Z-Score", fmtFloat(a.CurrentZ, 2)})
		t.AppendRow(table.Row{"Position", a.State.String()})
		t.AppendRow(table.Row{"Entry Signals", a.EntrySignals})
		if a.StopLosses > 0 {
			t.AppendRow(table.Row{"Stop Losses", ColorRed.Sprint(a.StopLosses)})
		}
		t.AppendSeparator()
		t.AppendRow(table.Row{"Signal", signalColor(a.Recommendation.Signal).Sprint(string(a.Recommendation.Signal))})
		t.AppendRow(table.Row{"Strength", fmtFloat(a.Recommendation.Strength, 2)})
		t.AppendRow(table.Row{"Description", a.Recommendation.Description})
		if a.Recommendation.Action != "" {
			t.AppendRow(table.Row{"Action", a.Recommendation.Action})
		}
	}

	out := t.Render()
	if traceTail > 0 && len(a.Trace) > 0 {
		out += "\n" + formatTrace(a.Trace, traceTail)
	}
	return out
}

func formatTrace(trace []models.TraceStep, tail int) string {
	if len(trace) > tail {
		trace = trace[len(trace)-tail:]
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Date", "Spread", "Z", "Signal", "Position"})
	for _, s := range trace {
		sig := ""
		switch {
		case s.Signal > 0:
			sig = ColorGreen.Sprintf("%+d", s.Signal)
		case s.Signal < 0:
			sig = ColorRed.Sprintf("%+d", s.Signal)
		}
		t.AppendRow(table.Row{
			s.Time.Format("2006-01-02"),
			fmt.Sprintf("%.4f", s.Spread),
			fmtFloat(s.Z, 2),
			sig,
			s.Position.String(),
		})
	}
	return t.Render()
}

func rupees(d decimal.Decimal) string {
	return "Rs " + d.StringFixed(2)
}

// FormatFeeTable renders a fee breakdown with totals
func FormatFeeTable(b models.FeeBreakdown) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Charge", "Amount"})

	t.AppendRow(table.Row{"Brokerage", rupees(b.Brokerage)})
	t.AppendRow(table.Row{"STT", rupees(b.STT)})
	t.AppendRow(table.Row{"Transaction Charges", rupees(b.TransactionCharges)})
	t.AppendRow(table.Row{"SEBI Charges", rupees(b.SEBICharges)})
	t.AppendRow(table.Row{"Stamp Duty", rupees(b.StampDuty)})
	t.AppendRow(table.Row{"GST", rupees(b.GST)})
	if b.DPCharges.IsPositive() {
		t.AppendRow(table.Row{"DP Charges", rupees(b.DPCharges)})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Total Charges", rupees(b.TotalCharges)})
	t.AppendRow(table.Row{"Gross Profit", rupees(b.GrossProfit)})

	netColor := ColorGreen
	if b.NetProfit.IsNegative() {
		netColor = ColorRed
	}
	t.AppendRow(table.Row{"Net Profit", netColor.Sprint(rupees(b.NetProfit))})
	t.AppendRow(table.Row{"Net Profit %", netColor.Sprintf("%s%%", b.NetProfitPercent.StringFixed(3))})

	return t.Render()
}

// FormatSizingTable renders a position sizing decision
func FormatSizingTable(s models.PositionSizing, symbol1, symbol2 string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Leg", "Qty", "Cost"})
	t.AppendRow(table.Row{symbol1, s.Qty1, rupees(s.Cost1)})
	t.AppendRow(table.Row{symbol2, s.Qty2, rupees(s.Cost2)})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Total", "", rupees(s.TotalCost)})
	t.AppendRow(table.Row{"Hedge Ratio", "", fmt.Sprintf("%.4f", s.HedgeRatio)})
	t.AppendRow(table.Row{"Capital Used", "", s.CapitalUtilization.StringFixed(2) + "%"})
	return t.Render()
}

// FormatPairCheck renders a two-leg profitability verdict
func FormatPairCheck(c models.PairTradeCheck) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Gross Profit", rupees(c.GrossProfit)})
	t.AppendRow(table.Row{"Total Fees", rupees(c.TotalFees)})
	t.AppendRow(table.Row{"Net Profit", rupees(c.NetProfit)})
	t.AppendRow(table.Row{"Net Profit %", c.NetProfitPercent.StringFixed(3) + "%"})
	t.AppendRow(table.Row{"Investment", rupees(c.TotalInvestment)})

	verdict := ColorRed.Sprint(c.Recommendation)
	if c.IsProfitable {
		verdict = ColorGreen.Sprint(c.Recommendation)
	}
	t.AppendRow(table.Row{"Verdict", verdict})
	return t.Render()
}
