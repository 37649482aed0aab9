package strategy

import (
	"math"

	"options-lab/internal/errors"
	"options-lab/internal/models"
)

// BreakevenParams carries the inputs of the per-shape breakeven
// formulas. Credit shapes use the short strikes, total NetCredit (in
// currency) and Contracts; the single wheel shapes use Strike, Premium
// and UnderlyingPrice.
type BreakevenParams struct {
	ShortPutStrike  float64
	ShortCallStrike float64
	NetCredit       float64
	Contracts       int

	Strike          float64
	Premium         float64
	UnderlyingPrice float64
}

// Solve computes the breakeven price(s) for a strategy shape, returned
// in ascending order. Credit shapes yield up to two prices (one per
// populated short strike); the wheel shapes yield exactly one.
// A non-positive contract count on a credit shape is rejected rather
// than dividing by zero.
func Solve(shape models.StrategyShape, p BreakevenParams, multiplier float64) ([]float64, error) {
	switch shape {
	case models.ShapeVerticalCredit, models.ShapeCondor:
		if p.Contracts <= 0 {
			return nil, errors.Wrapf(errors.ErrInputValidation, "contracts must be positive, got %d", p.Contracts)
		}
		if multiplier <= 0 {
			return nil, errors.Wrapf(errors.ErrInputValidation, "multiplier must be positive, got %v", multiplier)
		}
		perShare := p.NetCredit / (multiplier * float64(p.Contracts))
		var breakevens []float64
		if p.ShortPutStrike > 0 {
			breakevens = append(breakevens, p.ShortPutStrike-perShare)
		}
		if p.ShortCallStrike > 0 {
			breakevens = append(breakevens, p.ShortCallStrike+perShare)
		}
		return breakevens, nil
	case models.ShapeCashSecuredPut:
		return []float64{p.Strike - p.Premium}, nil
	case models.ShapeCoveredCall:
		return []float64{p.UnderlyingPrice - p.Premium}, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownShape, "%q", shape)
	}
}

// ProbabilityOfProfit approximates the probability of profit from the
// option's delta, as a percentage. For puts it is (1−|delta|)×100; for
// calls it is 100−delta×100, the chance of finishing below the strike
// and not being assigned. Delta stands in for probability-OTM here;
// this is a display heuristic, not a statistical model.
func ProbabilityOfProfit(typ models.OptionType, delta float64) float64 {
	if typ == models.Put {
		return (1 - math.Abs(delta)) * 100
	}
	return 100 - delta*100
}
