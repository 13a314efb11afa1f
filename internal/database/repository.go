package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/analysis"
)

// Repository handles prediction persistence.
type Repository struct {
	db *DB
}

// NewRepository creates a repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SavePrediction persists a prediction result.
func (r *Repository) SavePrediction(result analysis.PredictionResult, ipAddress string) (*PredictionRecord, error) {
	record, err := NewPredictionRecord(result, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prediction: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO predictions (id, success_probability, risk_level, risk_label, profile_json, factor_scores_json, ip_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.SuccessProbability, record.RiskLevel, record.RiskLabel,
		record.ProfileJSON, record.FactorScoresJSON, record.IPAddress, record.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}

	return record, nil
}

// ListRecent returns the most recent predictions, newest first.
func (r *Repository) ListRecent(limit int) ([]*PredictionRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, success_probability, risk_level, risk_label, profile_json, factor_scores_json, ip_address, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var records []*PredictionRecord
	for rows.Next() {
		var record PredictionRecord
		if err := rows.Scan(
			&record.ID, &record.SuccessProbability, &record.RiskLevel, &record.RiskLabel,
			&record.ProfileJSON, &record.FactorScoresJSON, &record.IPAddress, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

// CountByRiskLevel tallies stored predictions per risk level.
func (r *Repository) CountByRiskLevel() (map[string]int64, error) {
	rows, err := r.db.Query(`SELECT risk_level, COUNT(*) FROM predictions GROUP BY risk_level`)
	if err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var level string
		var count int64
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[level] = count
	}

	return counts, rows.Err()
}

// DeleteOlderThan removes predictions older than the retention window and
// returns how many were deleted.
func (r *Repository) DeleteOlderThan(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	res, err := r.db.Exec(`DELETE FROM predictions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old predictions: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		slog.Info("Deleted old predictions", "count", deleted, "retention_days", retentionDays)
	}

	return deleted, nil
}
