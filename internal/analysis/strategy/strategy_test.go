package strategy

import (
	"math"
	"testing"

	"options-lab/internal/analysis/greeks"
	"options-lab/internal/analysis/payoff"
	apperrors "options-lab/internal/errors"
	"options-lab/internal/models"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(greeks.NewEstimator(0.25), 100, 0.1)
}

func TestAggregateEmptyLegs(t *testing.T) {
	a := newTestAggregator()
	metrics := a.Aggregate(nil, models.MarketContext{UnderlyingPrice: 100, DaysToExpiry: 30})

	if metrics.NetCost != 0 || metrics.MaxRisk != 0 || metrics.TotalDebit != 0 || metrics.TotalCredit != 0 {
		t.Errorf("empty strategy should zero all economics, got %+v", metrics)
	}
	if metrics.Direction != models.DirectionNeutral {
		t.Errorf("empty strategy direction = %s, want NEUTRAL", metrics.Direction)
	}
	if metrics.ReturnOnRiskValid {
		t.Error("empty strategy should have no valid return on risk")
	}
}

func TestAggregateLongCallDebit(t *testing.T) {
	a := newTestAggregator()
	legs := []models.OptionLeg{
		{Type: models.Call, Side: models.Long, Strike: 105, Premium: 3.2, Quantity: 2},
	}
	metrics := a.Aggregate(legs, models.MarketContext{UnderlyingPrice: 100, DaysToExpiry: 30})

	if metrics.TotalDebit != 640 {
		t.Errorf("total debit = %v, want 640", metrics.TotalDebit)
	}
	if metrics.NetCost != 640 {
		t.Errorf("net cost = %v, want 640 (positive debit)", metrics.NetCost)
	}
	if metrics.MaxRisk != 640 {
		t.Errorf("max risk = %v, want the debit paid", metrics.MaxRisk)
	}
}

func TestAggregateStraddleNetDelta(t *testing.T) {
	a := newTestAggregator()
	estimator := greeks.NewEstimator(0.25)
	market := models.MarketContext{UnderlyingPrice: 100, DaysToExpiry: 30}

	call := models.OptionLeg{Type: models.Call, Side: models.Long, Strike: 100, Premium: 2, Quantity: 1}
	put := models.OptionLeg{Type: models.Put, Side: models.Long, Strike: 100, Premium: 2, Quantity: 1}

	metrics := a.Aggregate([]models.OptionLeg{call, put}, market)
	want := estimator.Estimate(call, market).Delta + estimator.Estimate(put, market).Delta

	if math.Abs(metrics.NetGreeks.Delta-want) > 1e-9 {
		t.Errorf("straddle net delta = %v, want signed sum %v with no cross-leg interaction", metrics.NetGreeks.Delta, want)
	}
}

func TestAggregateZeroRiskCreditGuard(t *testing.T) {
	a := newTestAggregator()
	// Naked short put: credit collected but the generic aggregate has
	// zero debit, so the return-on-risk denominator is zero.
	legs := []models.OptionLeg{
		{Type: models.Put, Side: models.Short, Strike: 95, Premium: 2, Quantity: 1},
	}
	metrics := a.Aggregate(legs, models.MarketContext{UnderlyingPrice: 100, DaysToExpiry: 30})

	if metrics.ReturnOnRiskValid {
		t.Error("zero max risk must mark return on risk not-applicable")
	}
	if metrics.ReturnOnRisk != 0 {
		t.Errorf("guarded return on risk = %v, want sentinel 0", metrics.ReturnOnRisk)
	}
}

func TestCondorExample(t *testing.T) {
	a := newTestAggregator()
	params := CondorParams{
		PutBuyStrike: 485, PutBuyPremium: 1.50,
		PutSellStrike: 490, PutSellPremium: 2.50,
		CallSellStrike: 510, CallSellPremium: 2.50,
		CallBuyStrike: 515, CallBuyPremium: 1.50,
		Contracts: 1,
	}
	metrics := a.Condor(params, models.MarketContext{UnderlyingPrice: 500, DaysToExpiry: 35})

	if netCredit := -metrics.NetCost; netCredit != 200 {
		t.Errorf("net credit = %v, want 200", netCredit)
	}
	if metrics.MaxRisk != 300 {
		t.Errorf("max risk = %v, want max(5,5)*100 - 200 = 300", metrics.MaxRisk)
	}
	if len(metrics.Breakevens) != 2 {
		t.Fatalf("got %d breakevens, want 2", len(metrics.Breakevens))
	}
	if metrics.Breakevens[0] != 488 || metrics.Breakevens[1] != 512 {
		t.Errorf("breakevens = %v, want [488, 512]", metrics.Breakevens)
	}
	if !metrics.ReturnOnRiskValid || math.Abs(metrics.ReturnOnRisk-200.0/300.0) > 1e-9 {
		t.Errorf("return on risk = %v (valid=%v), want 200/300", metrics.ReturnOnRisk, metrics.ReturnOnRiskValid)
	}
}

func TestCondorAsymmetricWings(t *testing.T) {
	a := newTestAggregator()
	// Put wing 10 wide, call wing 5 wide: risk is bounded by the wider
	// wing, not the sum.
	params := CondorParams{
		PutBuyStrike: 480, PutBuyPremium: 1.00,
		PutSellStrike: 490, PutSellPremium: 2.50,
		CallSellStrike: 510, CallSellPremium: 2.50,
		CallBuyStrike: 515, CallBuyPremium: 1.50,
		Contracts: 1,
	}
	metrics := a.Condor(params, models.MarketContext{UnderlyingPrice: 500, DaysToExpiry: 35})

	netCredit := -metrics.NetCost
	want := 10*100 - netCredit
	if metrics.MaxRisk != want {
		t.Errorf("max risk = %v, want wider wing %v", metrics.MaxRisk, want)
	}
}

func TestCondorBreakevenRoundTrip(t *testing.T) {
	a := newTestAggregator()
	params := CondorParams{
		PutBuyStrike: 485, PutBuyPremium: 1.50,
		PutSellStrike: 490, PutSellPremium: 2.50,
		CallSellStrike: 510, CallSellPremium: 2.50,
		CallBuyStrike: 515, CallBuyPremium: 1.50,
		Contracts: 1,
	}
	market := models.MarketContext{UnderlyingPrice: 500, DaysToExpiry: 35}
	metrics := a.Condor(params, market)
	netCredit := params.NetCredit(100)

	for _, breakeven := range metrics.Breakevens {
		pl := netCredit
		for _, leg := range params.PayoffLegs() {
			pl += payoff.LegProfit(leg, breakeven, 100)
		}
		if math.Abs(pl) > 1e-6 {
			t.Errorf("payoff at breakeven %v = %v, want ~0", breakeven, pl)
		}
	}
}

func TestSolveVerticalCredit(t *testing.T) {
	breakevens, err := Solve(models.ShapeVerticalCredit, BreakevenParams{
		ShortPutStrike: 490,
		NetCredit:      100,
		Contracts:      1,
	}, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(breakevens) != 1 || breakevens[0] != 489 {
		t.Errorf("breakevens = %v, want [489]", breakevens)
	}
}

func TestSolveGuardsZeroContracts(t *testing.T) {
	_, err := Solve(models.ShapeCondor, BreakevenParams{
		ShortPutStrike:  490,
		ShortCallStrike: 510,
		NetCredit:       200,
		Contracts:       0,
	}, 100)
	if !apperrors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("zero contracts should fail validation, got %v", err)
	}
}

func TestSolveUnknownShape(t *testing.T) {
	_, err := Solve(models.StrategyShape("BUTTERFLY"), BreakevenParams{}, 100)
	if !apperrors.Is(err, apperrors.ErrUnknownShape) {
		t.Errorf("unknown shape should be rejected, got %v", err)
	}
}

func TestProbabilityOfProfit(t *testing.T) {
	if got := ProbabilityOfProfit(models.Put, -0.30); math.Abs(got-70) > 1e-9 {
		t.Errorf("put POP at delta -0.30 = %v, want 70", got)
	}
	if got := ProbabilityOfProfit(models.Call, 0.30); math.Abs(got-70) > 1e-9 {
		t.Errorf("call POP at delta 0.30 = %v, want 70", got)
	}
}

func TestEvaluateWheelCashSecuredPut(t *testing.T) {
	a := newTestAggregator()
	eval, err := a.EvaluateWheel(WheelParams{
		Shape:     models.ShapeCashSecuredPut,
		Strike:    490,
		Premium:   2.50,
		Contracts: 1,
		Market:    models.MarketContext{UnderlyingPrice: 500, DaysToExpiry: 35},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.BreakEven != 487.50 {
		t.Errorf("breakeven = %v, want strike - premium = 487.50", eval.BreakEven)
	}
	if eval.PremiumIncome != 250 {
		t.Errorf("premium income = %v, want 250", eval.PremiumIncome)
	}
	if eval.CapitalRequired != 49000 {
		t.Errorf("capital required = %v, want 49000", eval.CapitalRequired)
	}
	wantAnnualized := (2.50 / 490 * 100) / 35 * 365
	if math.Abs(eval.AnnualizedReturn-wantAnnualized) > 1e-9 {
		t.Errorf("annualized return = %v, want %v", eval.AnnualizedReturn, wantAnnualized)
	}
	if eval.MaxProfit != eval.PremiumIncome {
		t.Errorf("CSP max profit = %v, want the premium income", eval.MaxProfit)
	}
}

func TestEvaluateWheelCoveredCall(t *testing.T) {
	a := newTestAggregator()
	eval, err := a.EvaluateWheel(WheelParams{
		Shape:     models.ShapeCoveredCall,
		Strike:    510,
		Premium:   2.50,
		Contracts: 1,
		Market:    models.MarketContext{UnderlyingPrice: 500, DaysToExpiry: 35},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.BreakEven != 497.50 {
		t.Errorf("breakeven = %v, want underlying - premium = 497.50", eval.BreakEven)
	}
	// Upside capped at the strike: premium plus room between spot and
	// strike, regardless of how far the underlying runs.
	if eval.MaxProfit != 1250 {
		t.Errorf("capped upside = %v, want (2.50 + 10) * 100 = 1250", eval.MaxProfit)
	}
}

func TestEvaluateWheelZeroDTE(t *testing.T) {
	a := newTestAggregator()
	eval, err := a.EvaluateWheel(WheelParams{
		Shape:     models.ShapeCashSecuredPut,
		Strike:    490,
		Premium:   2.50,
		Contracts: 1,
		Market:    models.MarketContext{UnderlyingPrice: 500, DaysToExpiry: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.AnnualizedReturn != 0 {
		t.Errorf("zero DTE annualized return = %v, want sentinel 0", eval.AnnualizedReturn)
	}
}

func TestEvaluateWheelRejectsBadInput(t *testing.T) {
	a := newTestAggregator()
	if _, err := a.EvaluateWheel(WheelParams{Shape: models.ShapeCondor, Strike: 490, Premium: 2.5, Contracts: 1}); !apperrors.Is(err, apperrors.ErrUnknownShape) {
		t.Errorf("non-wheel shape should be rejected, got %v", err)
	}
	if _, err := a.EvaluateWheel(WheelParams{Shape: models.ShapeCashSecuredPut, Strike: 490, Premium: 2.5, Contracts: 0}); !apperrors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("zero contracts should be rejected, got %v", err)
	}
}

func TestDirectionClassification(t *testing.T) {
	a := newTestAggregator()
	market := models.MarketContext{UnderlyingPrice: 100, DaysToExpiry: 30}

	bullish := a.Aggregate([]models.OptionLeg{
		{Type: models.Call, Side: models.Long, Strike: 100, Premium: 2, Quantity: 1},
	}, market)
	if bullish.Direction != models.DirectionBullish {
		t.Errorf("long ATM call direction = %s, want BULLISH", bullish.Direction)
	}

	bearish := a.Aggregate([]models.OptionLeg{
		{Type: models.Put, Side: models.Long, Strike: 100, Premium: 2, Quantity: 1},
	}, market)
	if bearish.Direction != models.DirectionBearish {
		t.Errorf("long ATM put direction = %s, want BEARISH", bearish.Direction)
	}

	neutral := a.Aggregate([]models.OptionLeg{
		{Type: models.Call, Side: models.Long, Strike: 100, Premium: 2, Quantity: 1},
		{Type: models.Put, Side: models.Long, Strike: 100, Premium: 2, Quantity: 1},
	}, market)
	if neutral.Direction != models.DirectionNeutral {
		t.Errorf("straddle direction = %s, want NEUTRAL", neutral.Direction)
	}
}
