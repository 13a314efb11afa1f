// Package types defines the HTTP API request shapes.
package types

// PredictRequest carries a raw student record. Values may be numbers or
// strings; the preprocessor normalizes and validates them.
type PredictRequest struct {
	Profile map[string]interface{} `json:"profile" binding:"required"`
}

// SimulateRequest carries current factor scores plus proposed per-factor
// score increments on the [0,1] scale.
type SimulateRequest struct {
	FactorScores map[string]float64 `json:"factor_scores" binding:"required"`
	Improvements map[string]float64 `json:"improvements"`
}

// RecommendRequest carries factor scores and optional selection tuning.
type RecommendRequest struct {
	FactorScores map[string]float64 `json:"factor_scores" binding:"required"`
	Threshold    *float64           `json:"threshold,omitempty"`
	Limit        *int               `json:"limit,omitempty"`
}

// AnomalyRequest carries a raw student record for the advisory anomaly
// check.
type AnomalyRequest struct {
	Profile map[string]interface{} `json:"profile" binding:"required"`
}
