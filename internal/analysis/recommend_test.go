package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

func TestRecommendAllFactorsHealthy(t *testing.T) {
	advice := Recommend(fullScores(0.8))

	assert.True(t, advice.NoActionNeeded)
	assert.Empty(t, advice.FocusAreas)
	assert.Empty(t, advice.Recommendations)
}

func TestRecommendSelectsWorstFirst(t *testing.T) {
	scores := fullScores(0.8)
	scores[config.FactorSleepHours] = 0.3
	scores[config.FactorAttendance] = 0.1
	scores[config.FactorStudyHours] = 0.45

	advice := Recommend(scores)

	require.False(t, advice.NoActionNeeded)
	require.Len(t, advice.Recommendations, 3)
	assert.Equal(t, config.FactorAttendance, advice.Recommendations[0].Factor)
	assert.Equal(t, config.FactorSleepHours, advice.Recommendations[1].Factor)
	assert.Equal(t, config.FactorStudyHours, advice.Recommendations[2].Factor)
	assert.Equal(t, []string{"Attendance", "Sleep Hours", "Study Hours"}, advice.FocusAreas)
}

func TestRecommendLimitsToTopThree(t *testing.T) {
	advice := Recommend(fullScores(0.2))

	require.False(t, advice.NoActionNeeded)
	assert.Len(t, advice.Recommendations, TopFactorCount)
	assert.Len(t, advice.FocusAreas, TopFactorCount)
}

func TestRecommendWithOptions(t *testing.T) {
	scores := fullScores(0.6)

	advice := RecommendWithOptions(scores, 0.7, 5)

	require.False(t, advice.NoActionNeeded)
	assert.Len(t, advice.Recommendations, 5)
}

func TestRecommendSeverity(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{name: "below half is low", score: 0.3, expected: config.SeverityLow},
		{name: "just under half is low", score: 0.499, expected: config.SeverityLow},
		{name: "custom threshold can mark healthy scores medium", score: 0.6, expected: config.SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := fullScores(0.9)
			scores[config.FactorAttendance] = tt.score

			advice := RecommendWithOptions(scores, 0.7, 1)

			require.Len(t, advice.Recommendations, 1)
			assert.Equal(t, tt.expected, advice.Recommendations[0].Severity)
		})
	}
}

func TestRecommendUsesFactorGuidanceTable(t *testing.T) {
	scores := fullScores(0.9)
	scores[config.FactorAttendance] = 0.2

	advice := Recommend(scores)

	require.Len(t, advice.Recommendations, 1)
	rec := advice.Recommendations[0]
	assert.Equal(t, "Attendance", rec.DisplayName)
	assert.Equal(t, config.Recommendations[config.FactorAttendance][config.SeverityLow], rec.Actions)
}

func TestRecommendFallsBackToLowBucket(t *testing.T) {
	// sleep_hours carries only a low bucket, so a medium-severity score
	// still gets its low-bucket guidance
	scores := fullScores(0.9)
	scores[config.FactorSleepHours] = 0.6

	advice := RecommendWithOptions(scores, 0.7, 1)

	require.Len(t, advice.Recommendations, 1)
	rec := advice.Recommendations[0]
	assert.Equal(t, config.SeverityMedium, rec.Severity)
	assert.Equal(t, config.Recommendations[config.FactorSleepHours][config.SeverityLow], rec.Actions)
}

func TestRecommendGenericFallback(t *testing.T) {
	// family_support has no guidance table entry
	scores := fullScores(0.9)
	scores[config.FactorFamilySupport] = 0.3

	advice := Recommend(scores)

	require.Len(t, advice.Recommendations, 1)
	assert.Equal(t, []string{
		"Focus on improving family support",
		"Set specific goals for family support",
		"Track progress weekly",
	}, advice.Recommendations[0].Actions)
}
