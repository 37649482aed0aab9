package payoff

import (
	"math"
	"testing"

	"options-lab/internal/models"
)

func TestIntrinsic(t *testing.T) {
	tests := []struct {
		name   string
		typ    models.OptionType
		strike float64
		price  float64
		want   float64
	}{
		{"call ITM", models.Call, 100, 110, 10},
		{"call OTM", models.Call, 100, 90, 0},
		{"call ATM", models.Call, 100, 100, 0},
		{"put ITM", models.Put, 100, 90, 10},
		{"put OTM", models.Put, 100, 110, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intrinsic(tt.typ, tt.strike, tt.price); got != tt.want {
				t.Errorf("Intrinsic(%s, %v, %v) = %v, want %v", tt.typ, tt.strike, tt.price, got, tt.want)
			}
		})
	}
}

func TestLegProfit(t *testing.T) {
	longCall := models.OptionLeg{Type: models.Call, Side: models.Long, Strike: 100, Premium: 3, Quantity: 1}

	// Settled at 110: intrinsic 10, premium 3 -> +700.
	if got := LegProfit(longCall, 110, 100); got != 700 {
		t.Errorf("long call P/L at 110 = %v, want 700", got)
	}
	// Settled at 90: worthless, lose the premium.
	if got := LegProfit(longCall, 90, 100); got != -300 {
		t.Errorf("long call P/L at 90 = %v, want -300", got)
	}

	shortPut := models.OptionLeg{Type: models.Put, Side: models.Short, Strike: 100, Premium: 2.5, Quantity: 2}

	// Expires OTM: keep the full premium on both contracts.
	if got := LegProfit(shortPut, 105, 100); got != 500 {
		t.Errorf("short put P/L at 105 = %v, want 500", got)
	}
	// Assigned at 90: intrinsic 10 against 2.50 collected, twice.
	if got := LegProfit(shortPut, 90, 100); got != -1500 {
		t.Errorf("short put P/L at 90 = %v, want -1500", got)
	}
}

func TestCurveOrderingAndBounds(t *testing.T) {
	g := NewGenerator(100)
	market := models.MarketContext{UnderlyingPrice: 100, DaysToExpiry: 30}
	legs := []models.OptionLeg{
		{Type: models.Call, Side: models.Long, Strike: 100, Premium: 3, Quantity: 1},
	}

	curve := g.Curve(legs, market, RangeSpec{SweepPercent: 0.25, Samples: 60})

	if len(curve) != 60 {
		t.Fatalf("curve has %d points, want 60", len(curve))
	}
	if math.Abs(curve[0].Price-75) > 1e-9 || math.Abs(curve[len(curve)-1].Price-125) > 1e-9 {
		t.Errorf("curve spans [%v, %v], want [75, 125]", curve[0].Price, curve[len(curve)-1].Price)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Price <= curve[i-1].Price {
			t.Fatalf("curve prices not strictly ascending at index %d", i)
		}
	}
}

func TestCurveProfitLossSplit(t *testing.T) {
	g := NewGenerator(100)
	market := models.MarketContext{UnderlyingPrice: 100, DaysToExpiry: 30}
	legs := []models.OptionLeg{
		{Type: models.Call, Side: models.Long, Strike: 100, Premium: 3, Quantity: 1},
	}

	curve := g.Curve(legs, market, RangeSpec{SweepPercent: 0.25, Samples: 60})
	for _, p := range curve {
		if p.ProfitPart != math.Max(0, p.ProfitLoss) {
			t.Fatalf("profit part %v at price %v, want max(0, %v)", p.ProfitPart, p.Price, p.ProfitLoss)
		}
		if p.LossPart != math.Min(0, p.ProfitLoss) {
			t.Fatalf("loss part %v at price %v, want min(0, %v)", p.LossPart, p.Price, p.ProfitLoss)
		}
	}
}

func TestCurveDeterministic(t *testing.T) {
	g := NewGenerator(100)
	market := models.MarketContext{UnderlyingPrice: 250, DaysToExpiry: 45}
	legs := []models.OptionLeg{
		{Type: models.Put, Side: models.Short, Strike: 240, Premium: 4.2, Quantity: 3},
		{Type: models.Call, Side: models.Short, Strike: 260, Premium: 3.8, Quantity: 3},
	}
	spec := RangeSpec{SweepPercent: 0.15, Samples: 50}

	first := g.Curve(legs, market, spec)
	second := g.Curve(legs, market, spec)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("curve differs between identical runs at index %d", i)
		}
	}
}

func TestCurveNetCreditAddedOncePerPoint(t *testing.T) {
	g := NewGenerator(100)
	market := models.MarketContext{UnderlyingPrice: 100, DaysToExpiry: 30}
	legs := []models.OptionLeg{
		{Type: models.Put, Side: models.Short, Strike: 95, Quantity: 1},
	}

	bare := g.Curve(legs, market, RangeSpec{SweepPercent: 0.1, Samples: 20})
	credited := g.Curve(legs, market, RangeSpec{SweepPercent: 0.1, Samples: 20, NetCredit: 200})

	for i := range bare {
		if math.Abs(credited[i].ProfitLoss-(bare[i].ProfitLoss+200)) > 1e-9 {
			t.Fatalf("net credit not applied once at index %d: %v vs %v", i, credited[i].ProfitLoss, bare[i].ProfitLoss)
		}
	}
}
