package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

func TestPredictEndToEnd(t *testing.T) {
	raw := RawProfile{
		"attendance":       85.0,
		"study_hours":      3.0,
		"sleep_hours":      7.0,
		"family_support":   "High",
		"extracurricular":  "Moderate",
		"previous_grades":  "Good",
		"financial_status": "Stable",
		"mental_health":    "Good",
		"peer_influence":   "Positive",
	}

	profile, err := ValidateAndSanitize(raw)
	require.NoError(t, err)

	result := NewPredictor().Predict(profile)

	assert.InDelta(t, 0.6144, result.SuccessProbability, 1e-9)
	assert.Equal(t, config.LevelModerateRisk, result.RiskAssessment.Level)
	assert.Equal(t, "Moderate Risk", result.RiskAssessment.Label)
	assert.Len(t, result.FactorScores, len(config.FactorOrder))
	require.Len(t, result.TopFactors, TopFactorCount)
	assert.Equal(t, config.FactorAttendance, result.TopFactors[0].Factor)
	assert.Equal(t, profile, result.Profile)
}

func TestPredictExtremes(t *testing.T) {
	tests := []struct {
		name          string
		profile       StudentProfile
		expectedScore float64
		expectedLevel string
	}{
		{
			name: "weakest valid profile",
			profile: StudentProfile{
				Attendance: 0, StudyHours: 0, SleepHours: 0,
				FamilySupport: "Low", Extracurricular: "None", PreviousGrades: "Poor",
				FinancialStatus: "Struggling", MentalHealth: "Poor", PeerInfluence: "Negative",
			},
			expectedScore: 0.093,
			expectedLevel: config.LevelHighRisk,
		},
		{
			name: "strongest valid profile",
			profile: StudentProfile{
				Attendance: 100, StudyHours: 8, SleepHours: 10,
				FamilySupport: "High", Extracurricular: "High", PreviousGrades: "Excellent",
				FinancialStatus: "Comfortable", MentalHealth: "Excellent", PeerInfluence: "Positive",
			},
			expectedScore: 1.0,
			expectedLevel: config.LevelSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewPredictor().Predict(tt.profile)

			assert.InDelta(t, tt.expectedScore, result.SuccessProbability, 1e-9)
			assert.Equal(t, tt.expectedLevel, result.RiskAssessment.Level)
		})
	}
}

func TestPredictIsDeterministic(t *testing.T) {
	profile := StudentProfile{
		Attendance: 72, StudyHours: 5, SleepHours: 6,
		FamilySupport: "Medium", Extracurricular: "Moderate", PreviousGrades: "Average",
		FinancialStatus: "Stable", MentalHealth: "Fair", PeerInfluence: "Neutral",
	}
	p := NewPredictor()

	first := p.Predict(profile)
	second := p.Predict(profile)

	assert.Equal(t, first, second)
}

func TestPredictWithModelDelegates(t *testing.T) {
	profile := StudentProfile{
		Attendance: 85, StudyHours: 3, SleepHours: 7,
		FamilySupport: "High", Extracurricular: "Moderate", PreviousGrades: "Good",
		FinancialStatus: "Stable", MentalHealth: "Good", PeerInfluence: "Positive",
	}
	p := NewPredictor()

	assert.Equal(t, p.Predict(profile), p.PredictWithModel(profile))
}

func TestTopFactorJSONTriple(t *testing.T) {
	tf := TopFactor{Factor: "attendance", Score: 0.625, Impact: 0.15625}

	data, err := json.Marshal(tf)
	require.NoError(t, err)
	assert.JSONEq(t, `["attendance", 0.625, 0.15625]`, string(data))

	var decoded TopFactor
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tf, decoded)
}
