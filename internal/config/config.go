// Package config holds the static scoring tables for EduPulse: factor
// weights, categorical score mappings, risk bands, and the recommendation
// database. Everything in here is read-only process-wide data; the scoring
// pipeline never mutates it.
package config

import "strings"

// Factor names. These nine keys identify every measurable attribute of a
// student profile across the whole pipeline.
const (
	FactorAttendance      = "attendance"
	FactorStudyHours      = "study_hours"
	FactorSleepHours      = "sleep_hours"
	FactorFamilySupport   = "family_support"
	FactorExtracurricular = "extracurricular"
	FactorPreviousGrades  = "previous_grades"
	FactorFinancialStatus = "financial_status"
	FactorMentalHealth    = "mental_health"
	FactorPeerInfluence   = "peer_influence"
)

// FactorOrder is the canonical iteration order for the nine factors. Impact
// ranking uses it as the deterministic tie-break, so it must stay stable.
var FactorOrder = []string{
	FactorAttendance,
	FactorStudyHours,
	FactorSleepHours,
	FactorFamilySupport,
	FactorExtracurricular,
	FactorPreviousGrades,
	FactorFinancialStatus,
	FactorMentalHealth,
	FactorPeerInfluence,
}

// NumericFactors are the continuous inputs, in canonical order.
var NumericFactors = []string{FactorAttendance, FactorStudyHours, FactorSleepHours}

// CategoricalFactors are the enumerated inputs, in canonical order.
var CategoricalFactors = []string{
	FactorFamilySupport,
	FactorExtracurricular,
	FactorPreviousGrades,
	FactorFinancialStatus,
	FactorMentalHealth,
	FactorPeerInfluence,
}

// Bounds is a closed numeric interval.
type Bounds struct {
	Min float64
	Max float64
}

// ValidRanges are the acceptable input domains for the continuous factors.
// Values outside these ranges fail validation.
var ValidRanges = map[string]Bounds{
	FactorAttendance: {Min: 0, Max: 100},
	FactorStudyHours: {Min: 0, Max: 24},
	FactorSleepHours: {Min: 0, Max: 24},
}

// ScoreBounds are the normalization windows for the continuous factors.
// They sit inside the valid input domain so that scores saturate at the
// edges instead of extrapolating.
var ScoreBounds = map[string]Bounds{
	FactorAttendance: {Min: 60, Max: 100},
	FactorStudyHours: {Min: 1, Max: 8},
	FactorSleepHours: {Min: 4, Max: 10},
}

// CategoricalOptions enumerates the valid values per categorical factor,
// in ascending order of their mapped score.
var CategoricalOptions = map[string][]string{
	FactorFamilySupport:   {"Low", "Medium", "High"},
	FactorExtracurricular: {"None", "Moderate", "High"},
	FactorPreviousGrades:  {"Poor", "Average", "Good", "Excellent"},
	FactorFinancialStatus: {"Struggling", "Stable", "Comfortable"},
	FactorMentalHealth:    {"Poor", "Fair", "Good", "Excellent"},
	FactorPeerInfluence:   {"Negative", "Neutral", "Positive"},
}

// ScoreMappings converts each categorical value to its normalized score.
// Every entry in CategoricalOptions must have a mapping here; the config
// tests enforce that integrity.
var ScoreMappings = map[string]map[string]float64{
	FactorFamilySupport:   {"Low": 0.3, "Medium": 0.7, "High": 1.0},
	FactorExtracurricular: {"None": 0.3, "Moderate": 0.7, "High": 1.0},
	FactorPreviousGrades:  {"Poor": 0.2, "Average": 0.5, "Good": 0.8, "Excellent": 1.0},
	FactorFinancialStatus: {"Struggling": 0.3, "Stable": 0.7, "Comfortable": 1.0},
	FactorMentalHealth:    {"Poor": 0.2, "Fair": 0.5, "Good": 0.8, "Excellent": 1.0},
	FactorPeerInfluence:   {"Negative": 0.2, "Neutral": 0.5, "Positive": 1.0},
}

// Category names for weighting and display.
const (
	CategoryAcademic = "academic_factors"
	CategoryWellness = "wellness_factors"
	CategorySupport  = "support_factors"
)

// CategoryOrder fixes the scan order for weight lookup. Factor names are
// unique across categories, so the order only matters for determinism.
var CategoryOrder = []string{CategoryAcademic, CategoryWellness, CategorySupport}

// Weights is the two-level weight table: category -> factor -> weight.
// Subtotals are 0.60 academic, 0.30 wellness, 0.10 support; the grand total
// must be 1.0 for success probabilities to stay in [0,1].
var Weights = map[string]map[string]float64{
	CategoryAcademic: {
		FactorAttendance:     0.25,
		FactorStudyHours:     0.20,
		FactorPreviousGrades: 0.15,
	},
	CategoryWellness: {
		FactorSleepHours:      0.15,
		FactorMentalHealth:    0.10,
		FactorExtracurricular: 0.05,
	},
	CategorySupport: {
		FactorFamilySupport:   0.05,
		FactorFinancialStatus: 0.03,
		FactorPeerInfluence:   0.02,
	},
}

// WeightOf resolves a factor's weight by scanning the category sub-tables
// in CategoryOrder. Unknown factors weigh 0.
func WeightOf(factor string) float64 {
	for _, category := range CategoryOrder {
		if w, ok := Weights[category][factor]; ok {
			return w
		}
	}
	return 0
}

// CategoryOf returns the category a factor belongs to, or "" if unknown.
func CategoryOf(factor string) string {
	for _, category := range CategoryOrder {
		if _, ok := Weights[category][factor]; ok {
			return category
		}
	}
	return ""
}

// Risk level identifiers.
const (
	LevelHighRisk     = "HIGH_RISK"
	LevelModerateRisk = "MODERATE_RISK"
	LevelAtRisk       = "AT_RISK"
	LevelSuccess      = "SUCCESS"
	LevelUnknown      = "UNKNOWN"
)

// RiskBand is a non-overlapping probability interval with display metadata.
// Bands are half-open [Min, Max) except the top band, which closes at 1.0.
type RiskBand struct {
	Level       string  `json:"level"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
	Description string  `json:"description"`
}

// RiskBands lists the four bands in ascending order of Min. Classification
// depends on this ordering.
var RiskBands = []RiskBand{
	{
		Level:       LevelHighRisk,
		Min:         0.0,
		Max:         0.4,
		Label:       "High Risk",
		Color:       "#FF6B6B",
		Description: "Needs immediate intervention",
	},
	{
		Level:       LevelModerateRisk,
		Min:         0.4,
		Max:         0.7,
		Label:       "Moderate Risk",
		Color:       "#FFD166",
		Description: "Requires monitoring and support",
	},
	{
		Level:       LevelAtRisk,
		Min:         0.7,
		Max:         0.85,
		Label:       "At Risk",
		Color:       "#FFA726",
		Description: "Below target, needs improvement",
	},
	{
		Level:       LevelSuccess,
		Min:         0.85,
		Max:         1.0,
		Label:       "Success",
		Color:       "#06D6A0",
		Description: "On track for academic success",
	},
}

// UnknownBand is returned when no band matches. Scores in [0,1] always
// match a band, so it only appears for out-of-domain inputs.
var UnknownBand = RiskBand{
	Level:       LevelUnknown,
	Label:       "Unknown",
	Color:       "#6C757D",
	Description: "Unable to determine risk level",
}

// SuccessTarget is the probability at which a student counts as on track.
const SuccessTarget = 0.85

// Recommendation severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
)

// Recommendations maps factor -> severity -> guidance strings. Factors
// absent here fall back to generic templated guidance.
var Recommendations = map[string]map[string][]string{
	FactorAttendance: {
		SeverityLow: {
			"Implement daily attendance tracking",
			"Schedule regular check-ins with advisor",
			"Consider flexible attendance options",
		},
		SeverityMedium: {
			"Maintain current attendance rate",
			"Set goal for 5% improvement",
			"Join study groups for accountability",
		},
	},
	FactorStudyHours: {
		SeverityLow: {
			"Create structured study schedule",
			"Use Pomodoro technique (25 min focus, 5 min break)",
			"Attend study skills workshop",
		},
		SeverityMedium: {
			"Optimize study environment",
			"Incorporate active recall techniques",
			"Join peer study sessions",
		},
	},
	FactorSleepHours: {
		SeverityLow: {
			"Establish consistent sleep schedule",
			"Avoid screens 1 hour before bed",
			"Create relaxing bedtime routine",
		},
	},
}

// DefaultHistoryLimit bounds the in-memory prediction history.
const DefaultHistoryLimit = 10

// DisplayName converts a factor key to its human-readable form,
// e.g. "study_hours" -> "Study Hours".
func DisplayName(factor string) string {
	words := strings.Split(factor, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
