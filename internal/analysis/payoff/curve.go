package payoff

import "options-lab/internal/models"

// RangeSpec describes the price sweep of one curve generation pass.
// SweepPercent is the half-range on each side of the underlying price,
// as a fraction of it. NetCredit is a strategy-level credit added once
// per point for builders that model the position as verticals with a
// tracked credit rather than raw legs (the condor builder does this);
// it stays zero when the legs alone carry the full economics.
type RangeSpec struct {
	SweepPercent float64
	Samples      int
	NetCredit    float64
}

// Generator synthesizes payoff curves. The curve is finite and eagerly
// produced; it is regenerated from scratch on every input change.
type Generator struct {
	multiplier float64
}

// NewGenerator creates a generator with the given contract multiplier.
func NewGenerator(multiplier float64) *Generator {
	return &Generator{multiplier: multiplier}
}

// Curve sweeps the settlement price linearly across the spec's range
// and sums per-leg profit/loss at each step, emitting points ordered by
// ascending price. Deterministic for identical inputs.
func (g *Generator) Curve(legs []models.OptionLeg, market models.MarketContext, spec RangeSpec) models.PayoffCurve {
	samples := spec.Samples
	if samples < 2 {
		samples = 2
	}

	low := market.UnderlyingPrice * (1 - spec.SweepPercent)
	high := market.UnderlyingPrice * (1 + spec.SweepPercent)
	step := (high - low) / float64(samples-1)

	curve := make(models.PayoffCurve, 0, samples)
	for i := 0; i < samples; i++ {
		price := low + step*float64(i)
		pl := spec.NetCredit
		for _, leg := range legs {
			pl += LegProfit(leg, price, g.multiplier)
		}
		curve = append(curve, newPoint(price, pl))
	}
	return curve
}

func newPoint(price, pl float64) models.PayoffPoint {
	point := models.PayoffPoint{Price: price, ProfitLoss: pl}
	if pl > 0 {
		point.ProfitPart = pl
	} else {
		point.LossPart = pl
	}
	return point
}
