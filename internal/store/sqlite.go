package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "options-lab/internal/errors"
	"options-lab/internal/models"
)

// SQLiteStore implements AnalysisStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed journal store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Analyses table: one row per evaluation run
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		symbol TEXT,
		strategy_name TEXT NOT NULL,
		strategy TEXT NOT NULL,
		market TEXT NOT NULL,
		metrics TEXT NOT NULL,
		score INTEGER,
		recommendation TEXT,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp);
	CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveAnalysis persists one evaluation run. A missing ID or timestamp
// is filled in.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error {
	if record.ID == "" {
		record.ID = fmt.Sprintf("an-%d", time.Now().UnixNano())
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	strategyJSON, err := json.Marshal(record.Strategy)
	if err != nil {
		return apperrors.NewDataError("save", record.ID, err)
	}
	marketJSON, err := json.Marshal(record.Market)
	if err != nil {
		return apperrors.NewDataError("save", record.ID, err)
	}
	metricsJSON, err := json.Marshal(record.Metrics)
	if err != nil {
		return apperrors.NewDataError("save", record.ID, err)
	}

	var score sql.NullInt64
	var recommendation sql.NullString
	if record.Score != nil {
		score = sql.NullInt64{Int64: int64(record.Score.Score), Valid: true}
		recommendation = sql.NullString{String: string(record.Score.Recommendation), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, timestamp, symbol, strategy_name, strategy, market, metrics, score, recommendation, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Timestamp, record.Symbol, record.Strategy.Name,
		string(strategyJSON), string(marketJSON), string(metricsJSON),
		score, recommendation, record.Notes,
	)
	if err != nil {
		return apperrors.NewDataError("save", record.ID, err)
	}
	return nil
}

// GetAnalysis retrieves one journal entry by ID.
func (s *SQLiteStore) GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, symbol, strategy, market, metrics, score, recommendation, notes
		FROM analyses WHERE id = ?`, id)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.Wrapf(apperrors.ErrRecordNotFound, "analysis %s", id)
	}
	if err != nil {
		return nil, apperrors.NewDataError("get", id, err)
	}
	return record, nil
}

// ListAnalyses returns journal entries matching the filter, newest
// first.
func (s *SQLiteStore) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]models.AnalysisRecord, error) {
	query := `
		SELECT id, timestamp, symbol, strategy, market, metrics, score, recommendation, notes
		FROM analyses`
	var conditions []string
	var args []interface{}

	if filter.Symbol != "" {
		conditions = append(conditions, "symbol = ?")
		args = append(args, filter.Symbol)
	}
	if filter.Strategy != "" {
		conditions = append(conditions, "strategy_name = ?")
		args = append(args, filter.Strategy)
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, filter.To)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataError("list", "", err)
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, apperrors.NewDataError("list", "", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	var strategyJSON, marketJSON, metricsJSON string
	var symbol, recommendation, notes sql.NullString
	var score sql.NullInt64

	err := row.Scan(&record.ID, &record.Timestamp, &symbol,
		&strategyJSON, &marketJSON, &metricsJSON,
		&score, &recommendation, &notes)
	if err != nil {
		return nil, err
	}

	record.Symbol = symbol.String
	record.Notes = notes.String
	if err := json.Unmarshal([]byte(strategyJSON), &record.Strategy); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(marketJSON), &record.Market); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(metricsJSON), &record.Metrics); err != nil {
		return nil, err
	}
	if score.Valid {
		record.Score = &models.ScoreResult{
			Score:          int(score.Int64),
			Recommendation: models.Recommendation(recommendation.String),
		}
	}
	return &record, nil
}
