// Package scoring converts candidate-trade metrics into a 0–100 score
// and a four-tier recommendation via a fixed weighted rubric.
package scoring

import (
	"math"

	"options-lab/internal/models"
)

// CandidateMetrics are the inputs of one scoring pass.
// AnnualizedReturn and ProbProfit are percentages; Delta is the raw
// option delta (sign ignored by the rubric); RiskReward is credit per
// unit of capital at risk.
type CandidateMetrics struct {
	AnnualizedReturn float64
	ProbProfit       float64
	Delta            float64
	DaysToExpiry     int
	RiskReward       float64
}

// Band is a closed interval; both bounds are inclusive.
type Band struct {
	Low  float64
	High float64
}

// Contains reports whether v lies inside the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Low && v <= b.High
}

// Rubric defines the per-factor caps and sweet-spot bands of the
// scorer. The delta and DTE bands are nested: the tightest matching
// band wins.
type Rubric struct {
	ReturnCap      float64
	ProbCap        float64
	DeltaIdeal     Band
	DeltaGood      Band
	DeltaFair      Band
	DeltaFloor     float64
	DTEIdeal       Band
	DTEGood        Band
	DTEFair        Band
	RiskRewardHigh float64
	RiskRewardMid  float64
	RiskRewardLow  float64
}

// DefaultRubric returns the standard rubric: annualized return capped
// at 30 points, probability of profit at 25, |delta| sweet spot at 20,
// DTE sweet spot at 15, risk/reward at 10.
func DefaultRubric() Rubric {
	return Rubric{
		ReturnCap:      30,
		ProbCap:        25,
		DeltaIdeal:     Band{0.20, 0.35},
		DeltaGood:      Band{0.15, 0.40},
		DeltaFair:      Band{0.10, 0.50},
		DeltaFloor:     5,
		DTEIdeal:       Band{30, 45},
		DTEGood:        Band{21, 60},
		DTEFair:        Band{14, 90},
		RiskRewardHigh: 0.03,
		RiskRewardMid:  0.02,
		RiskRewardLow:  0.01,
	}
}

// Scorer applies a rubric to candidate metrics.
type Scorer struct {
	rubric Rubric
}

// NewScorer creates a scorer with the default rubric.
func NewScorer() *Scorer {
	return &Scorer{rubric: DefaultRubric()}
}

// NewScorerWithRubric creates a scorer with a custom rubric.
func NewScorerWithRubric(rubric Rubric) *Scorer {
	return &Scorer{rubric: rubric}
}

// Score sums the weighted factors, rounds to the nearest integer and
// maps the total onto the recommendation tiers. Tier thresholds are
// inclusive at the lower bound: a score of exactly 75 is EXCELLENT.
func (s *Scorer) Score(m CandidateMetrics) models.ScoreResult {
	r := s.rubric
	components := make(map[string]float64)

	returnPoints := math.Min(m.AnnualizedReturn, r.ReturnCap)
	components["annualized_return"] = returnPoints

	probPoints := m.ProbProfit / 100 * r.ProbCap
	components["prob_profit"] = probPoints

	deltaPoints := s.deltaPoints(math.Abs(m.Delta))
	components["delta"] = deltaPoints

	dtePoints := s.dtePoints(m.DaysToExpiry)
	components["days_to_expiry"] = dtePoints

	rrPoints := s.riskRewardPoints(m.RiskReward)
	components["risk_reward"] = rrPoints

	total := returnPoints + probPoints + deltaPoints + dtePoints + rrPoints
	score := int(math.Round(clamp(total, 0, 100)))

	return models.ScoreResult{
		Score:          score,
		Recommendation: scoreToRecommendation(score),
		Components:     components,
	}
}

func (s *Scorer) deltaPoints(absDelta float64) float64 {
	r := s.rubric
	switch {
	case r.DeltaIdeal.Contains(absDelta):
		return 20
	case r.DeltaGood.Contains(absDelta):
		return 15
	case r.DeltaFair.Contains(absDelta):
		return 10
	default:
		return r.DeltaFloor
	}
}

func (s *Scorer) dtePoints(dte int) float64 {
	r := s.rubric
	d := float64(dte)
	switch {
	case r.DTEIdeal.Contains(d):
		return 15
	case r.DTEGood.Contains(d):
		return 10
	case r.DTEFair.Contains(d):
		return 5
	default:
		return 0
	}
}

func (s *Scorer) riskRewardPoints(rr float64) float64 {
	r := s.rubric
	switch {
	case rr >= r.RiskRewardHigh:
		return 10
	case rr >= r.RiskRewardMid:
		return 7
	case rr >= r.RiskRewardLow:
		return 4
	default:
		return 0
	}
}

// scoreToRecommendation maps a score onto the recommendation tiers.
func scoreToRecommendation(score int) models.Recommendation {
	switch {
	case score >= 75:
		return models.RecommendExcellent
	case score >= 55:
		return models.RecommendGood
	case score >= 35:
		return models.RecommendNeutral
	default:
		return models.RecommendPoor
	}
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
