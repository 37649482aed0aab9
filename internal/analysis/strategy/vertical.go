package strategy

import "options-lab/internal/models"

// VerticalCreditParams describes a credit vertical: a short strike sold
// against a further-out long strike of the same type. ShortStrike
// inside LongStrike ordering (short put above long put, short call
// below long call) is a precondition.
type VerticalCreditParams struct {
	Type         models.OptionType
	ShortStrike  float64
	ShortPremium float64
	LongStrike   float64
	LongPremium  float64
	Contracts    int
}

// Legs expands the vertical into its two raw legs.
func (p VerticalCreditParams) Legs() []models.OptionLeg {
	return []models.OptionLeg{
		{Type: p.Type, Side: models.Short, Strike: p.ShortStrike, Premium: p.ShortPremium, Quantity: p.Contracts},
		{Type: p.Type, Side: models.Long, Strike: p.LongStrike, Premium: p.LongPremium, Quantity: p.Contracts},
	}
}

// NetCredit returns the total credit collected, in currency terms.
func (p VerticalCreditParams) NetCredit(multiplier float64) float64 {
	return (p.ShortPremium - p.LongPremium) * multiplier * float64(p.Contracts)
}

// Width returns the strike width of the spread.
func (p VerticalCreditParams) Width() float64 {
	w := p.ShortStrike - p.LongStrike
	if w < 0 {
		w = -w
	}
	return w
}

// VerticalCredit aggregates a credit vertical with its defined-risk
// formula: max loss is the spread width less the credit collected.
func (a *Aggregator) VerticalCredit(p VerticalCreditParams, market models.MarketContext) models.StrategyMetrics {
	netCredit := p.NetCredit(a.multiplier)
	maxRisk := p.Width()*a.multiplier*float64(p.Contracts) - netCredit

	metrics := models.StrategyMetrics{
		TotalDebit:  p.LongPremium * a.multiplier * float64(p.Contracts),
		TotalCredit: p.ShortPremium * a.multiplier * float64(p.Contracts),
		NetCost:     -netCredit,
		MaxRisk:     maxRisk,
		MaxProfit:   netCredit,
	}
	metrics.NetGreeks = a.estimator.EstimateAll(p.Legs(), market)
	metrics.Direction = a.classify(metrics.NetGreeks.Delta)

	params := BreakevenParams{NetCredit: netCredit, Contracts: p.Contracts}
	if p.Type == models.Put {
		params.ShortPutStrike = p.ShortStrike
	} else {
		params.ShortCallStrike = p.ShortStrike
	}
	if breakevens, err := Solve(models.ShapeVerticalCredit, params, a.multiplier); err == nil {
		metrics.Breakevens = breakevens
	}

	if netCredit > 0 && maxRisk > 0 {
		metrics.ReturnOnRisk = netCredit / maxRisk
		metrics.ReturnOnRiskValid = true
	}
	return metrics
}
