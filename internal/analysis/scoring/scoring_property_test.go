package scoring

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"options-lab/internal/models"
)

// Property: for any candidate metrics the score stays within [0, 100]
// and the recommendation matches the tier thresholds, inclusive at the
// lower bound: >= 75 EXCELLENT, >= 55 GOOD, >= 35 NEUTRAL, else POOR.
func TestScoreBoundsAndTiersProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)
	scorer := NewScorer()

	properties.Property("score in [0, 100] with consistent recommendation", prop.ForAll(
		func(annualized, probProfit, delta, riskReward float64, dte int) bool {
			result := scorer.Score(CandidateMetrics{
				AnnualizedReturn: annualized,
				ProbProfit:       probProfit,
				Delta:            delta,
				DaysToExpiry:     dte,
				RiskReward:       riskReward,
			})

			if result.Score < 0 || result.Score > 100 {
				return false
			}

			var want models.Recommendation
			switch {
			case result.Score >= 75:
				want = models.RecommendExcellent
			case result.Score >= 55:
				want = models.RecommendGood
			case result.Score >= 35:
				want = models.RecommendNeutral
			default:
				want = models.RecommendPoor
			}
			return result.Recommendation == want
		},
		gen.Float64Range(-100, 500),
		gen.Float64Range(0, 100),
		gen.Float64Range(-1, 1),
		gen.Float64Range(0, 0.2),
		gen.IntRange(0, 365),
	))

	properties.TestingRun(t)
}
