// Package models defines the domain types shared across the analytics core.
package models

// OptionType identifies the option contract type.
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

// OptionSide identifies whether a leg was bought or sold to open.
type OptionSide string

const (
	Long  OptionSide = "LONG"
	Short OptionSide = "SHORT"
)

// OptionLeg represents one option position within a strategy.
// Premium is quoted per share; Quantity is in contracts.
type OptionLeg struct {
	Type     OptionType `json:"type"`
	Side     OptionSide `json:"side"`
	Strike   float64    `json:"strike"`
	Premium  float64    `json:"premium"`
	Quantity int        `json:"quantity"`
}

// IsLong returns true if the leg was bought to open.
func (l OptionLeg) IsLong() bool {
	return l.Side == Long
}

// MarketContext is the read-only market snapshot shared by all
// components of an evaluation pass. DaysToExpiry is resolved by the
// caller; the core never reads the clock. ImpliedVol of zero means
// "unknown" and falls back to the configured assumed volatility.
type MarketContext struct {
	UnderlyingPrice float64 `json:"underlying_price"`
	DaysToExpiry    int     `json:"days_to_expiry"`
	ImpliedVol      float64 `json:"implied_vol,omitempty"`
}

// Greeks holds approximate risk sensitivities for a leg or a strategy,
// already scaled by side and quantity.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// Add returns the elementwise sum of two Greeks.
func (g Greeks) Add(o Greeks) Greeks {
	return Greeks{
		Delta: g.Delta + o.Delta,
		Gamma: g.Gamma + o.Gamma,
		Theta: g.Theta + o.Theta,
		Vega:  g.Vega + o.Vega,
	}
}

// PayoffPoint is one sample of a strategy payoff at expiration.
// ProfitPart and LossPart split ProfitLoss for area charting:
// ProfitPart = max(0, ProfitLoss), LossPart = min(0, ProfitLoss).
type PayoffPoint struct {
	Price      float64 `json:"price" csv:"price"`
	ProfitLoss float64 `json:"profit_loss" csv:"profit_loss"`
	ProfitPart float64 `json:"profit_part" csv:"profit_part"`
	LossPart   float64 `json:"loss_part" csv:"loss_part"`
}

// PayoffCurve is a finite sequence of payoff samples ordered by
// ascending price. It is regenerated from scratch whenever inputs
// change, never updated incrementally.
type PayoffCurve []PayoffPoint
