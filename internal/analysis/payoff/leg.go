// Package payoff evaluates per-leg and strategy-level profit/loss at
// expiration and synthesizes payoff curves over a price sweep.
package payoff

import "options-lab/internal/models"

// Intrinsic returns the intrinsic value of a leg's contract at the
// given settlement price: max(0, price−strike) for calls,
// max(0, strike−price) for puts.
func Intrinsic(typ models.OptionType, strike, price float64) float64 {
	var value float64
	if typ == models.Call {
		value = price - strike
	} else {
		value = strike - price
	}
	if value < 0 {
		return 0
	}
	return value
}

// LegProfit returns the profit or loss of one leg settled at the given
// price, in currency terms. The multiplier encodes shares per contract.
// Long legs earn intrinsic value net of the premium paid; short legs
// keep the premium net of intrinsic value given up.
func LegProfit(leg models.OptionLeg, price, multiplier float64) float64 {
	intrinsic := Intrinsic(leg.Type, leg.Strike, price)
	perShare := intrinsic - leg.Premium
	if leg.Side == models.Short {
		perShare = leg.Premium - intrinsic
	}
	return perShare * multiplier * float64(leg.Quantity)
}
