package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/analysis"
)

// PredictionRecord is a persisted prediction.
type PredictionRecord struct {
	ID                 string    `json:"id" db:"id"`
	SuccessProbability float64   `json:"success_probability" db:"success_probability"`
	RiskLevel          string    `json:"risk_level" db:"risk_level"`
	RiskLabel          string    `json:"risk_label" db:"risk_label"`
	ProfileJSON        string    `json:"-" db:"profile_json"`
	FactorScoresJSON   string    `json:"-" db:"factor_scores_json"`
	IPAddress          string    `json:"-" db:"ip_address"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// NewPredictionRecord builds a record from a prediction result.
func NewPredictionRecord(result analysis.PredictionResult, ipAddress string) (*PredictionRecord, error) {
	profileJSON, err := json.Marshal(result.Profile)
	if err != nil {
		return nil, err
	}

	scoresJSON, err := json.Marshal(result.FactorScores)
	if err != nil {
		return nil, err
	}

	return &PredictionRecord{
		ID:                 uuid.New().String(),
		SuccessProbability: result.SuccessProbability,
		RiskLevel:          result.RiskAssessment.Level,
		RiskLabel:          result.RiskAssessment.Label,
		ProfileJSON:        string(profileJSON),
		FactorScoresJSON:   string(scoresJSON),
		IPAddress:          ipAddress,
		CreatedAt:          time.Now(),
	}, nil
}

// Profile decodes the stored profile.
func (r *PredictionRecord) Profile() (analysis.StudentProfile, error) {
	var profile analysis.StudentProfile
	err := json.Unmarshal([]byte(r.ProfileJSON), &profile)
	return profile, err
}

// FactorScores decodes the stored factor scores.
func (r *PredictionRecord) FactorScores() (analysis.FactorScores, error) {
	var scores analysis.FactorScores
	err := json.Unmarshal([]byte(r.FactorScoresJSON), &scores)
	return scores, err
}
