// Package store provides persistence for the analysis journal.
package store

import (
	"context"
	"time"

	"options-lab/internal/models"
)

// AnalysisFilter narrows journal queries.
type AnalysisFilter struct {
	Symbol   string
	Strategy string
	From     time.Time
	To       time.Time
	Limit    int
}

// AnalysisStore defines the journal persistence interface.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]models.AnalysisRecord, error)
	Close() error
}
