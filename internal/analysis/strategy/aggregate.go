// Package strategy aggregates option legs into strategy-level
// risk/reward metrics and solves closed-form breakevens per strategy
// shape.
package strategy

import (
	"options-lab/internal/analysis/greeks"
	"options-lab/internal/models"
)

// Aggregator composes per-leg economics and Greeks into strategy
// metrics. Pure and synchronous; every evaluation recomputes from the
// full input set.
type Aggregator struct {
	estimator          *greeks.Estimator
	multiplier         float64
	directionThreshold float64
}

// NewAggregator creates an aggregator. The multiplier encodes shares
// per contract; directionThreshold is the |net delta| above which the
// strategy is classified directional.
func NewAggregator(estimator *greeks.Estimator, multiplier, directionThreshold float64) *Aggregator {
	return &Aggregator{
		estimator:          estimator,
		multiplier:         multiplier,
		directionThreshold: directionThreshold,
	}
}

// Aggregate sums leg economics into strategy metrics. An empty leg set
// yields zeroed metrics with a neutral direction. NetCost is positive
// when the trader pays a net debit. MaxRisk here is the total debit
// paid, which bounds the loss of simple long strategies; defined-risk
// spreads use Condor instead.
func (a *Aggregator) Aggregate(legs []models.OptionLeg, market models.MarketContext) models.StrategyMetrics {
	var metrics models.StrategyMetrics
	for _, leg := range legs {
		cost := leg.Premium * a.multiplier * float64(leg.Quantity)
		if leg.IsLong() {
			metrics.TotalDebit += cost
		} else {
			metrics.TotalCredit += cost
		}
	}
	metrics.NetCost = metrics.TotalDebit - metrics.TotalCredit
	metrics.MaxRisk = metrics.TotalDebit
	metrics.NetGreeks = a.estimator.EstimateAll(legs, market)
	metrics.Direction = a.classify(metrics.NetGreeks.Delta)

	// Return on risk only applies to net-credit positions with a
	// nonzero risk denominator; everything else stays not-applicable.
	if netCredit := -metrics.NetCost; netCredit > 0 && metrics.MaxRisk > 0 {
		metrics.ReturnOnRisk = netCredit / metrics.MaxRisk
		metrics.ReturnOnRiskValid = true
	}
	return metrics
}

// CondorParams describes an iron condor as its builder models it: two
// verticals with tracked premiums. Strike ordering
// (PutBuy < PutSell < CallSell < CallBuy) is a precondition, not a
// runtime check.
type CondorParams struct {
	PutBuyStrike    float64
	PutBuyPremium   float64
	PutSellStrike   float64
	PutSellPremium  float64
	CallSellStrike  float64
	CallSellPremium float64
	CallBuyStrike   float64
	CallBuyPremium  float64
	Contracts       int
}

// Legs expands the condor into its four raw legs.
func (p CondorParams) Legs() []models.OptionLeg {
	return []models.OptionLeg{
		{Type: models.Put, Side: models.Long, Strike: p.PutBuyStrike, Premium: p.PutBuyPremium, Quantity: p.Contracts},
		{Type: models.Put, Side: models.Short, Strike: p.PutSellStrike, Premium: p.PutSellPremium, Quantity: p.Contracts},
		{Type: models.Call, Side: models.Short, Strike: p.CallSellStrike, Premium: p.CallSellPremium, Quantity: p.Contracts},
		{Type: models.Call, Side: models.Long, Strike: p.CallBuyStrike, Premium: p.CallBuyPremium, Quantity: p.Contracts},
	}
}

// PayoffLegs returns the four legs with zeroed premiums for the payoff
// sweep. The condor builder tracks its credit at the strategy level, so
// legs enter the sweep intrinsic-only and the collected credit is added
// once per curve point instead of being re-derived from leg premiums.
func (p CondorParams) PayoffLegs() []models.OptionLeg {
	legs := p.Legs()
	for i := range legs {
		legs[i].Premium = 0
	}
	return legs
}

// NetCredit returns the total credit collected for the condor, in
// currency terms.
func (p CondorParams) NetCredit(multiplier float64) float64 {
	perShare := (p.PutSellPremium - p.PutBuyPremium) + (p.CallSellPremium - p.CallBuyPremium)
	return perShare * multiplier * float64(p.Contracts)
}

// Condor aggregates an iron condor with the defined-risk formula: the
// max loss is bounded by whichever wing is wider, not the sum of both
// wings, because only one side can finish in the money.
func (a *Aggregator) Condor(p CondorParams, market models.MarketContext) models.StrategyMetrics {
	netCredit := p.NetCredit(a.multiplier)

	putWidth := p.PutSellStrike - p.PutBuyStrike
	callWidth := p.CallBuyStrike - p.CallSellStrike
	width := putWidth
	if callWidth > width {
		width = callWidth
	}
	maxRisk := width*a.multiplier*float64(p.Contracts) - netCredit

	metrics := models.StrategyMetrics{
		TotalDebit:  (p.PutBuyPremium + p.CallBuyPremium) * a.multiplier * float64(p.Contracts),
		TotalCredit: (p.PutSellPremium + p.CallSellPremium) * a.multiplier * float64(p.Contracts),
		NetCost:     -netCredit,
		MaxRisk:     maxRisk,
		MaxProfit:   netCredit,
	}
	metrics.NetGreeks = a.estimator.EstimateAll(p.Legs(), market)
	metrics.Direction = a.classify(metrics.NetGreeks.Delta)

	if breakevens, err := Solve(models.ShapeCondor, BreakevenParams{
		ShortPutStrike:  p.PutSellStrike,
		ShortCallStrike: p.CallSellStrike,
		NetCredit:       netCredit,
		Contracts:       p.Contracts,
	}, a.multiplier); err == nil {
		metrics.Breakevens = breakevens
	}

	if netCredit > 0 && maxRisk > 0 {
		metrics.ReturnOnRisk = netCredit / maxRisk
		metrics.ReturnOnRiskValid = true
	}
	return metrics
}

func (a *Aggregator) classify(netDelta float64) models.Direction {
	switch {
	case netDelta > a.directionThreshold:
		return models.DirectionBullish
	case netDelta < -a.directionThreshold:
		return models.DirectionBearish
	default:
		return models.DirectionNeutral
	}
}
