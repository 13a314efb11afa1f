package analysis

import (
	"encoding/json"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

// StudentProfile is a validated, immutable description of a student's
// circumstances. Instances only exist after passing validation; construct
// them through ValidateAndSanitize.
type StudentProfile struct {
	Attendance      float64 `json:"attendance"`
	StudyHours      float64 `json:"study_hours"`
	SleepHours      float64 `json:"sleep_hours"`
	FamilySupport   string  `json:"family_support"`
	Extracurricular string  `json:"extracurricular"`
	PreviousGrades  string  `json:"previous_grades"`
	FinancialStatus string  `json:"financial_status"`
	MentalHealth    string  `json:"mental_health"`
	PeerInfluence   string  `json:"peer_influence"`
}

// Numeric returns the continuous field named by factor.
func (p StudentProfile) Numeric(factor string) float64 {
	switch factor {
	case config.FactorAttendance:
		return p.Attendance
	case config.FactorStudyHours:
		return p.StudyHours
	case config.FactorSleepHours:
		return p.SleepHours
	}
	return 0
}

// Categorical returns the enumerated field named by factor.
func (p StudentProfile) Categorical(factor string) string {
	switch factor {
	case config.FactorFamilySupport:
		return p.FamilySupport
	case config.FactorExtracurricular:
		return p.Extracurricular
	case config.FactorPreviousGrades:
		return p.PreviousGrades
	case config.FactorFinancialStatus:
		return p.FinancialStatus
	case config.FactorMentalHealth:
		return p.MentalHealth
	case config.FactorPeerInfluence:
		return p.PeerInfluence
	}
	return ""
}

// FactorScores maps each of the nine factor names to a normalized score in
// [0,1]. Always derived from a StudentProfile via the scorer; all nine keys
// are present in any valid instance.
type FactorScores map[string]float64

// Clone returns an independent copy of the scores.
func (fs FactorScores) Clone() FactorScores {
	out := make(FactorScores, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// RiskAssessment is a classified risk band together with the score that
// produced it.
type RiskAssessment struct {
	Level       string  `json:"level"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// TopFactor is one entry of the factor-impact ranking. Impact is the
// factor's score multiplied by its weight.
type TopFactor struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
	Impact float64 `json:"impact"`
}

// MarshalJSON serializes a TopFactor as a [name, score, impact] triple,
// the shape the dashboard's export payload expects.
func (t TopFactor) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{t.Factor, t.Score, t.Impact})
}

// UnmarshalJSON accepts the [name, score, impact] triple form.
func (t *TopFactor) UnmarshalJSON(data []byte) error {
	var triple []json.RawMessage
	if err := json.Unmarshal(data, &triple); err != nil {
		return err
	}
	if len(triple) > 0 {
		if err := json.Unmarshal(triple[0], &t.Factor); err != nil {
			return err
		}
	}
	if len(triple) > 1 {
		if err := json.Unmarshal(triple[1], &t.Score); err != nil {
			return err
		}
	}
	if len(triple) > 2 {
		if err := json.Unmarshal(triple[2], &t.Impact); err != nil {
			return err
		}
	}
	return nil
}

// PredictionResult is the complete output of one prediction call.
type PredictionResult struct {
	SuccessProbability float64        `json:"success_probability"`
	RiskAssessment     RiskAssessment `json:"risk_assessment"`
	FactorScores       FactorScores   `json:"factor_scores"`
	TopFactors         []TopFactor    `json:"top_factors"`
	Profile            StudentProfile `json:"profile"`
}
