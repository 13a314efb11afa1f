package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/errors"
)

func validRaw() RawProfile {
	return RawProfile{
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
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		input    interface{}
		expected interface{}
	}{
		{name: "rounds numeric to one decimal", field: "attendance", input: 85.6789, expected: 85.7},
		{name: "coerces numeric string", field: "study_hours", input: "3.25", expected: 3.3},
		{name: "coerces integer", field: "sleep_hours", input: 7, expected: 7.0},
		{name: "trims categorical whitespace", field: "family_support", input: "  High  ", expected: "High"},
		{name: "title-cases lowercase input", field: "previous_grades", input: "good", expected: "Good"},
		{name: "title-cases shouting input", field: "mental_health", input: "EXCELLENT", expected: "Excellent"},
		{name: "leaves unparseable strings alone", field: "attendance", input: "lots", expected: "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw[tt.field] = tt.input

			sanitized := Sanitize(raw)

			assert.Equal(t, tt.expected, sanitized[tt.field])
			assert.Equal(t, tt.input, raw[tt.field], "sanitize must not mutate its input")
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	raw := validRaw()
	raw["attendance"] = 85.6789
	raw["family_support"] = "  high  "

	once := Sanitize(raw)
	twice := Sanitize(once)

	assert.Equal(t, once, twice)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(RawProfile)
		expectedCode  string
		expectedField string
	}{
		{
			name:          "missing field",
			mutate:        func(r RawProfile) { delete(r, "attendance") },
			expectedCode:  apperrors.CodeMissingField,
			expectedField: "attendance",
		},
		{
			name:          "missing fields reported in canonical order",
			mutate:        func(r RawProfile) { delete(r, "peer_influence"); delete(r, "study_hours") },
			expectedCode:  apperrors.CodeMissingField,
			expectedField: "study_hours",
		},
		{
			name:          "attendance above range",
			mutate:        func(r RawProfile) { r["attendance"] = 150.0 },
			expectedCode:  apperrors.CodeOutOfRange,
			expectedField: "attendance",
		},
		{
			name:          "attendance below range",
			mutate:        func(r RawProfile) { r["attendance"] = -5.0 },
			expectedCode:  apperrors.CodeOutOfRange,
			expectedField: "attendance",
		},
		{
			name:          "study hours above range",
			mutate:        func(r RawProfile) { r["study_hours"] = 25.0 },
			expectedCode:  apperrors.CodeOutOfRange,
			expectedField: "study_hours",
		},
		{
			name:          "non-numeric value for numeric field",
			mutate:        func(r RawProfile) { r["sleep_hours"] = "plenty" },
			expectedCode:  apperrors.CodeOutOfRange,
			expectedField: "sleep_hours",
		},
		{
			name:          "unknown categorical value",
			mutate:        func(r RawProfile) { r["family_support"] = "Medium-ish" },
			expectedCode:  apperrors.CodeInvalidCategory,
			expectedField: "family_support",
		},
		{
			name:          "non-string categorical value",
			mutate:        func(r RawProfile) { r["peer_influence"] = 3.0 },
			expectedCode:  apperrors.CodeInvalidCategory,
			expectedField: "peer_influence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)

			err := Validate(raw)

			require.Error(t, err)
			appErr := apperrors.ToAppError(err)
			assert.Equal(t, tt.expectedCode, appErr.Code)
			assert.Equal(t, tt.expectedField, appErr.Field)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestValidateAcceptsValidProfile(t *testing.T) {
	assert.NoError(t, Validate(validRaw()))
}

func TestValidateErrorMessages(t *testing.T) {
	raw := validRaw()
	raw["attendance"] = 150.0
	err := Validate(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Attendance must be between 0 and 100%")

	raw = validRaw()
	raw["family_support"] = "Maybe"
	err = Validate(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Family Support must be one of: Low, Medium, High")
}

func TestValidateAndSanitize(t *testing.T) {
	raw := validRaw()
	raw["attendance"] = "85.44"
	raw["family_support"] = "  high "

	profile, err := ValidateAndSanitize(raw)

	require.NoError(t, err)
	assert.Equal(t, 85.4, profile.Attendance)
	assert.Equal(t, "High", profile.FamilySupport)
	assert.Equal(t, 3.0, profile.StudyHours)
	assert.Equal(t, "Positive", profile.PeerInfluence)
}

func TestValidateAndSanitizeRejectsInvalid(t *testing.T) {
	raw := validRaw()
	raw["mental_health"] = "Meh"

	_, err := ValidateAndSanitize(raw)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCheckAnomalies(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*StudentProfile)
		expected []string
	}{
		{
			name:     "healthy profile has no warnings",
			mutate:   func(p *StudentProfile) {},
			expected: []string{},
		},
		{
			name:     "low attendance",
			mutate:   func(p *StudentProfile) { p.Attendance = 65 },
			expected: []string{"Low attendance (65%) - Consider intervention"},
		},
		{
			name:     "very low study hours",
			mutate:   func(p *StudentProfile) { p.StudyHours = 1 },
			expected: []string{"Very low study hours (1 hrs/day)"},
		},
		{
			name:     "very high study hours",
			mutate:   func(p *StudentProfile) { p.StudyHours = 12 },
			expected: []string{"Very high study hours (12 hrs/day) - Risk of burnout"},
		},
		{
			name:     "insufficient sleep",
			mutate:   func(p *StudentProfile) { p.SleepHours = 5 },
			expected: []string{"Insufficient sleep (5 hrs/night)"},
		},
		{
			name:     "excessive sleep",
			mutate:   func(p *StudentProfile) { p.SleepHours = 13 },
			expected: []string{"Excessive sleep (13 hrs/night)"},
		},
		{
			name:     "fair mental health",
			mutate:   func(p *StudentProfile) { p.MentalHealth = "Fair" },
			expected: []string{"Mental health concerns detected"},
		},
		{
			name:     "financial struggles",
			mutate:   func(p *StudentProfile) { p.FinancialStatus = "Struggling" },
			expected: []string{"Financial struggles may impact academic performance"},
		},
		{
			name: "multiple anomalies accumulate",
			mutate: func(p *StudentProfile) {
				p.Attendance = 50
				p.SleepHours = 4
				p.MentalHealth = "Poor"
			},
			expected: []string{
				"Low attendance (50%) - Consider intervention",
				"Insufficient sleep (4 hrs/night)",
				"Mental health concerns detected",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := StudentProfile{
				Attendance: 85, StudyHours: 3, SleepHours: 7,
				FamilySupport: "High", Extracurricular: "Moderate", PreviousGrades: "Good",
				FinancialStatus: "Stable", MentalHealth: "Good", PeerInfluence: "Positive",
			}
			tt.mutate(&profile)

			assert.Equal(t, tt.expected, CheckAnomalies(profile))
		})
	}
}
