package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

func fullScores(value float64) FactorScores {
	scores := make(FactorScores, len(config.FactorOrder))
	for _, factor := range config.FactorOrder {
		scores[factor] = value
	}
	return scores
}

func TestSimulateIntervention(t *testing.T) {
	tests := []struct {
		name     string
		scores   FactorScores
		deltas   map[string]float64
		expected float64
	}{
		{
			name:     "empty deltas reproduce aggregate score",
			scores:   fullScores(0.5),
			deltas:   map[string]float64{},
			expected: 0.5,
		},
		{
			name:     "nil deltas reproduce aggregate score",
			scores:   fullScores(0.5),
			deltas:   nil,
			expected: 0.5,
		},
		{
			name:     "single factor improvement moves the weighted total",
			scores:   fullScores(0.5),
			deltas:   map[string]float64{config.FactorAttendance: 0.2},
			expected: 0.55, // 0.5 + 0.2*0.25
		},
		{
			name:     "improvement clamps at one",
			scores:   fullScores(0.9),
			deltas:   map[string]float64{config.FactorAttendance: 0.5},
			expected: 0.925, // attendance capped at 1.0, gain is 0.1*0.25
		},
		{
			name:     "negative delta passes through unclamped",
			scores:   fullScores(0.1),
			deltas:   map[string]float64{config.FactorPeerInfluence: -0.5},
			expected: 0.09, // peer drops to -0.4, shifting its contribution by -0.5*0.02
		},
		{
			name:     "deltas for unknown factors are ignored",
			scores:   fullScores(0.5),
			deltas:   map[string]float64{"shoe_size": 0.5},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.scores.Clone()

			result := SimulateIntervention(tt.scores, tt.deltas)

			assert.InDelta(t, tt.expected, result, 1e-9)
			assert.Equal(t, before, tt.scores, "simulation must not mutate the input scores")
		})
	}
}

func TestSimulateMatchesAggregateForEmptyDeltas(t *testing.T) {
	profile := StudentProfile{
		Attendance: 85, StudyHours: 3, SleepHours: 7,
		FamilySupport: "High", Extracurricular: "Moderate", PreviousGrades: "Good",
		FinancialStatus: "Stable", MentalHealth: "Good", PeerInfluence: "Positive",
	}
	scores := CalculateFactorScores(profile)

	assert.Equal(t, AggregateScore(scores), SimulateIntervention(scores, nil))
}

func TestImprovementNeeded(t *testing.T) {
	tests := []struct {
		name               string
		current            float64
		target             float64
		expectedNeeded     float64
		expectedPercentage float64
		expectedStatus     string
	}{
		{
			name:           "at target",
			current:        0.85,
			target:         config.SuccessTarget,
			expectedStatus: "Target achieved",
		},
		{
			name:           "above target",
			current:        0.95,
			target:         config.SuccessTarget,
			expectedStatus: "Target achieved",
		},
		{
			name:               "below target",
			current:            0.6144,
			target:             config.SuccessTarget,
			expectedNeeded:     0.236,
			expectedPercentage: 38.3,
			expectedStatus:     "Need 23.6% improvement",
		},
		{
			name:               "zero score needs the full gap",
			current:            0,
			target:             config.SuccessTarget,
			expectedNeeded:     0.85,
			expectedPercentage: 100,
			expectedStatus:     "Need 85.0% improvement",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ImprovementNeeded(tt.current, tt.target)

			assert.InDelta(t, tt.expectedNeeded, plan.Needed, 1e-9)
			assert.InDelta(t, tt.expectedPercentage, plan.Percentage, 1e-9)
			assert.Equal(t, tt.expectedStatus, plan.Status)
		})
	}
}
