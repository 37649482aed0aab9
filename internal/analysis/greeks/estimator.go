// Package greeks estimates option risk sensitivities from moneyness
// and time to expiry. The estimates are deliberate approximations for
// dashboard display, not exact pricing theory: delta is a clamped
// linear function of moneyness, gamma a bell curve peaking at the
// money, theta and vega scale with the square root of time remaining.
package greeks

import (
	"math"

	"options-lab/internal/models"
)

const daysPerYear = 365.0

// Estimator derives approximate Greeks for a leg. It is a pure
// calculator: identical inputs always produce identical outputs.
type Estimator struct {
	assumedVol float64
}

// NewEstimator creates an estimator with the given assumed volatility,
// used whenever the market context carries no implied vol.
func NewEstimator(assumedVol float64) *Estimator {
	return &Estimator{assumedVol: assumedVol}
}

// Estimate returns the four Greeks for one leg, already scaled by
// quantity and flipped for short legs. Malformed numeric input (NaN,
// non-positive underlying) propagates as NaN; callers validate before
// invocation.
func (e *Estimator) Estimate(leg models.OptionLeg, market models.MarketContext) models.Greeks {
	moneyness := (leg.Strike - market.UnderlyingPrice) / market.UnderlyingPrice
	qty := float64(leg.Quantity)

	var delta float64
	if leg.Type == models.Call {
		delta = clamp(0.5-moneyness*2, 0.01, 0.99)
	} else {
		delta = clamp(-0.5-moneyness*2, -0.99, -0.01)
	}
	if leg.Side == models.Short {
		delta = -delta
	}
	delta *= qty

	gamma := math.Exp(-moneyness*moneyness*10) * 0.05 * qty

	vol := market.ImpliedVol
	if vol <= 0 {
		vol = e.assumedVol
	}
	timeScale := math.Sqrt(float64(market.DaysToExpiry) / daysPerYear)

	// Sellers and buyers sit on opposite sides of time decay and of
	// volatility exposure.
	actionSign := -1.0
	volSign := 1.0
	if leg.Side == models.Short {
		actionSign = 1.0
		volSign = -1.0
	}
	theta := -market.UnderlyingPrice * vol * timeScale * 0.01 * actionSign * qty
	vega := market.UnderlyingPrice * timeScale * 0.01 * volSign * qty

	return models.Greeks{
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
	}
}

// EstimateAll sums the per-leg Greeks over a set of legs.
func (e *Estimator) EstimateAll(legs []models.OptionLeg, market models.MarketContext) models.Greeks {
	var total models.Greeks
	for _, leg := range legs {
		total = total.Add(e.Estimate(leg, market))
	}
	return total
}

// clamp restricts a value to the given range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
