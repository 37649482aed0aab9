package strategy

import (
	"options-lab/internal/errors"
	"options-lab/internal/models"
)

// WheelParams describes one wheel-strategy leg: a cash-secured put or a
// covered call, sold for premium against reserved capital.
type WheelParams struct {
	Shape     models.StrategyShape
	Strike    float64
	Premium   float64
	Contracts int
	Market    models.MarketContext
}

// WheelEvaluation is the per-candidate economics of a wheel leg.
// AnnualizedReturn and PremiumYield are percentages; ProbProfit uses
// the delta proxy of ProbabilityOfProfit. RiskReward is premium income
// over capital required, the credit earned per unit of capital at risk.
type WheelEvaluation struct {
	BreakEven        float64 `json:"break_even"`
	PremiumIncome    float64 `json:"premium_income"`
	CapitalRequired  float64 `json:"capital_required"`
	PremiumYield     float64 `json:"premium_yield"`
	AnnualizedReturn float64 `json:"annualized_return"`
	MaxProfit        float64 `json:"max_profit"`
	ProbProfit       float64 `json:"prob_profit"`
	Delta            float64 `json:"delta"`
	RiskReward       float64 `json:"risk_reward"`
}

// Leg returns the short option leg the wheel shape sells.
func (p WheelParams) Leg() models.OptionLeg {
	typ := models.Put
	if p.Shape == models.ShapeCoveredCall {
		typ = models.Call
	}
	return models.OptionLeg{
		Type:     typ,
		Side:     models.Short,
		Strike:   p.Strike,
		Premium:  p.Premium,
		Quantity: p.Contracts,
	}
}

// EvaluateWheel computes the economics of one wheel candidate. A zero
// days-to-expiry leaves AnnualizedReturn at 0 rather than dividing by
// zero; the same guard applies to the capital-based ratios.
func (a *Aggregator) EvaluateWheel(p WheelParams) (WheelEvaluation, error) {
	if p.Shape != models.ShapeCashSecuredPut && p.Shape != models.ShapeCoveredCall {
		return WheelEvaluation{}, errors.Wrapf(errors.ErrUnknownShape, "%q", p.Shape)
	}
	if p.Contracts <= 0 {
		return WheelEvaluation{}, errors.Wrapf(errors.ErrInputValidation, "contracts must be positive, got %d", p.Contracts)
	}

	var eval WheelEvaluation
	qty := float64(p.Contracts)
	eval.PremiumIncome = p.Premium * a.multiplier * qty

	// Capital basis: the strike for a put that may be assigned, the
	// shares already held for a covered call.
	basis := p.Strike
	if p.Shape == models.ShapeCoveredCall {
		basis = p.Market.UnderlyingPrice
	}
	eval.CapitalRequired = basis * a.multiplier * qty

	breakevens, err := Solve(p.Shape, BreakevenParams{
		Strike:          p.Strike,
		Premium:         p.Premium,
		UnderlyingPrice: p.Market.UnderlyingPrice,
	}, a.multiplier)
	if err != nil {
		return WheelEvaluation{}, err
	}
	eval.BreakEven = breakevens[0]

	if basis > 0 {
		eval.PremiumYield = p.Premium / basis * 100
	}
	if p.Market.DaysToExpiry > 0 {
		eval.AnnualizedReturn = eval.PremiumYield / float64(p.Market.DaysToExpiry) * 365
	}
	if eval.CapitalRequired > 0 {
		eval.RiskReward = eval.PremiumIncome / eval.CapitalRequired
	}

	if p.Shape == models.ShapeCoveredCall {
		// Upside is capped at the strike: premium plus the room between
		// spot and strike.
		eval.MaxProfit = (p.Premium + (p.Strike - p.Market.UnderlyingPrice)) * a.multiplier * qty
	} else {
		eval.MaxProfit = eval.PremiumIncome
	}

	// Raw option delta for one long contract; the POP proxy reads the
	// unscaled value.
	optionDelta := a.estimator.Estimate(models.OptionLeg{
		Type:     p.Leg().Type,
		Side:     models.Long,
		Strike:   p.Strike,
		Quantity: 1,
	}, p.Market).Delta
	eval.Delta = optionDelta
	eval.ProbProfit = ProbabilityOfProfit(p.Leg().Type, optionDelta)

	return eval, nil
}
