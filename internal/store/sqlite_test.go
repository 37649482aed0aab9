package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "options-lab/internal/errors"
	"options-lab/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(symbol string) *models.AnalysisRecord {
	return &models.AnalysisRecord{
		Symbol: symbol,
		Strategy: models.StrategyDefinition{
			Name:  "wheel",
			Shape: models.ShapeCashSecuredPut,
			Legs: []models.OptionLeg{
				{Type: models.Put, Side: models.Short, Strike: 490, Premium: 2.5, Quantity: 1},
			},
		},
		Market: models.MarketContext{UnderlyingPrice: 500, DaysToExpiry: 35},
		Metrics: models.StrategyMetrics{
			TotalCredit: 250,
			NetCost:     -250,
			MaxRisk:     48750,
			Breakevens:  []float64{487.5},
		},
		Score: &models.ScoreResult{Score: 62, Recommendation: models.RecommendGood},
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := sampleRecord("AAPL")
	if err := s.SaveAnalysis(ctx, record); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if record.ID == "" {
		t.Fatal("save should assign an ID")
	}

	loaded, err := s.GetAnalysis(ctx, record.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if loaded.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", loaded.Symbol)
	}
	if loaded.Strategy.Name != "wheel" || loaded.Strategy.Shape != models.ShapeCashSecuredPut {
		t.Errorf("strategy round-trip mismatch: %+v", loaded.Strategy)
	}
	if len(loaded.Strategy.Legs) != 1 || loaded.Strategy.Legs[0].Strike != 490 {
		t.Errorf("legs round-trip mismatch: %+v", loaded.Strategy.Legs)
	}
	if loaded.Metrics.NetCost != -250 {
		t.Errorf("metrics round-trip mismatch: net cost %v", loaded.Metrics.NetCost)
	}
	if loaded.Score == nil || loaded.Score.Score != 62 || loaded.Score.Recommendation != models.RecommendGood {
		t.Errorf("score round-trip mismatch: %+v", loaded.Score)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetAnalysis(context.Background(), "an-missing")
	if !apperrors.Is(err, apperrors.ErrRecordNotFound) {
		t.Errorf("missing record should yield ErrRecordNotFound, got %v", err)
	}
}

func TestListAnalysesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, symbol := range []string{"AAPL", "MSFT", "AAPL"} {
		record := sampleRecord(symbol)
		if err := s.SaveAnalysis(ctx, record); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		// Distinct nanosecond IDs need distinct creation instants.
		time.Sleep(time.Millisecond)
	}

	all, err := s.ListAnalyses(ctx, AnalysisFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("listed %d records, want 3", len(all))
	}

	aapl, err := s.ListAnalyses(ctx, AnalysisFilter{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(aapl) != 2 {
		t.Errorf("AAPL filter returned %d records, want 2", len(aapl))
	}

	limited, err := s.ListAnalyses(ctx, AnalysisFilter{Limit: 1})
	if err != nil {
		t.Fatalf("limited list failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d records", len(limited))
	}
}
