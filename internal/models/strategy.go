package models

import "time"

// Direction classifies a strategy's exposure from its net delta.
type Direction string

const (
	DirectionBullish Direction = "BULLISH"
	DirectionBearish Direction = "BEARISH"
	DirectionNeutral Direction = "NEUTRAL"
)

// StrategyShape tags the strategy geometries that have closed-form
// breakeven and risk formulas. Callers are responsible for leg ordering
// (e.g. a condor's put wing below its call wing); the formulas are only
// well-defined under the intended ordering.
type StrategyShape string

const (
	ShapeVerticalCredit StrategyShape = "VERTICAL_CREDIT"
	ShapeCondor         StrategyShape = "CONDOR"
	ShapeCashSecuredPut StrategyShape = "CASH_SECURED_PUT"
	ShapeCoveredCall    StrategyShape = "COVERED_CALL"
)

// StrategyMetrics aggregates one or more legs into strategy-level
// risk/reward figures. NetCost is positive for a net debit and negative
// for a net credit. ReturnOnRisk is only meaningful when
// ReturnOnRiskValid is true; a zero MaxRisk denominator marks it
// not-applicable instead of propagating Inf.
type StrategyMetrics struct {
	TotalDebit        float64   `json:"total_debit"`
	TotalCredit       float64   `json:"total_credit"`
	NetCost           float64   `json:"net_cost"`
	MaxRisk           float64   `json:"max_risk"`
	MaxProfit         float64   `json:"max_profit,omitempty"`
	Breakevens        []float64 `json:"breakevens,omitempty"`
	NetGreeks         Greeks    `json:"net_greeks"`
	Direction         Direction `json:"direction"`
	ReturnOnRisk      float64   `json:"return_on_risk"`
	ReturnOnRiskValid bool      `json:"return_on_risk_valid"`
}

// Recommendation is the four-tier label attached to a candidate score.
type Recommendation string

const (
	RecommendExcellent Recommendation = "EXCELLENT"
	RecommendGood      Recommendation = "GOOD"
	RecommendNeutral   Recommendation = "NEUTRAL"
	RecommendPoor      Recommendation = "POOR"
)

// ScoreResult is the outcome of scoring a candidate trade. Components
// breaks the total down per rubric factor. Recomputed per query, never
// stored as canonical state.
type ScoreResult struct {
	Score          int                `json:"score"`
	Recommendation Recommendation     `json:"recommendation"`
	Components     map[string]float64 `json:"components,omitempty"`
}

// StrategyDefinition names a set of legs assembled by a caller.
// NetCredit carries the modeled credit for builders that track it at
// the strategy level (the condor builder models two verticals rather
// than four raw legs, so its credit is added to the payoff once per
// point instead of being re-derived from legs).
type StrategyDefinition struct {
	Name      string        `json:"name"`
	Shape     StrategyShape `json:"shape,omitempty"`
	Legs      []OptionLeg   `json:"legs"`
	NetCredit float64       `json:"net_credit,omitempty"`
}

// AnalysisRecord is one persisted evaluation run for the journal.
type AnalysisRecord struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Symbol    string             `json:"symbol,omitempty"`
	Strategy  StrategyDefinition `json:"strategy"`
	Market    MarketContext      `json:"market"`
	Metrics   StrategyMetrics    `json:"metrics"`
	Score     *ScoreResult       `json:"score,omitempty"`
	Notes     string             `json:"notes,omitempty"`
}
