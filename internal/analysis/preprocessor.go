package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/errors"
)

// RawProfile is an unvalidated key-value record as supplied by the caller.
// Numeric fields may arrive as numbers or numeric strings; categorical
// fields may be loosely formatted.
type RawProfile map[string]interface{}

// Sanitize normalizes the representation of a raw record without deciding
// validity: numeric fields are rounded to 1 decimal place, categorical
// fields are trimmed and title-cased. Idempotent; the input is not mutated.
func Sanitize(raw RawProfile) RawProfile {
	sanitized := make(RawProfile, len(raw))
	for k, v := range raw {
		sanitized[k] = v
	}

	for _, field := range config.NumericFactors {
		v, ok := sanitized[field]
		if !ok {
			continue
		}
		if f, ok := numericValue(v); ok {
			sanitized[field] = math.Round(f*10) / 10
		}
	}

	for _, field := range config.CategoricalFactors {
		v, ok := sanitized[field]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			sanitized[field] = titleCase(strings.TrimSpace(s))
		}
	}

	return sanitized
}

// Validate checks a raw record against required fields, numeric ranges and
// categorical domains. A nil return means a StudentProfile may be built
// from the record; any other outcome is a structured validation error.
func Validate(raw RawProfile) error {
	for _, field := range config.FactorOrder {
		if _, ok := raw[field]; !ok {
			return errors.NewMissingFieldError(field)
		}
	}

	numericMessages := map[string]string{
		config.FactorAttendance: "Attendance must be between 0 and 100%",
		config.FactorStudyHours: "Study hours must be between 0 and 24",
		config.FactorSleepHours: "Sleep hours must be between 0 and 24",
	}

	for _, field := range config.NumericFactors {
		f, ok := numericValue(raw[field])
		if !ok {
			return errors.NewOutOfRangeError(field, numericMessages[field])
		}
		bounds := config.ValidRanges[field]
		if f < bounds.Min || f > bounds.Max {
			return errors.NewOutOfRangeError(field, numericMessages[field])
		}
	}

	for _, field := range config.CategoricalFactors {
		value, _ := raw[field].(string)
		if !isValidOption(field, value) {
			return errors.NewInvalidCategoryError(field, config.DisplayName(field), config.CategoricalOptions[field])
		}
	}

	return nil
}

// ValidateAndSanitize runs the sanitizer then the validator, and on success
// constructs the immutable profile. Construction and validation are
// inseparable: this is the only way downstream code obtains a
// StudentProfile.
func ValidateAndSanitize(raw RawProfile) (StudentProfile, error) {
	sanitized := Sanitize(raw)
	if err := Validate(sanitized); err != nil {
		return StudentProfile{}, err
	}

	numeric := func(field string) float64 {
		f, _ := numericValue(sanitized[field])
		return f
	}
	categorical := func(field string) string {
		s, _ := sanitized[field].(string)
		return s
	}

	return StudentProfile{
		Attendance:      numeric(config.FactorAttendance),
		StudyHours:      numeric(config.FactorStudyHours),
		SleepHours:      numeric(config.FactorSleepHours),
		FamilySupport:   categorical(config.FactorFamilySupport),
		Extracurricular: categorical(config.FactorExtracurricular),
		PreviousGrades:  categorical(config.FactorPreviousGrades),
		FinancialStatus: categorical(config.FactorFinancialStatus),
		MentalHealth:    categorical(config.FactorMentalHealth),
		PeerInfluence:   categorical(config.FactorPeerInfluence),
	}, nil
}

// CheckAnomalies inspects an already-valid profile for unusual or
// concerning patterns. The warnings are advisory and never block
// prediction.
func CheckAnomalies(profile StudentProfile) []string {
	warnings := []string{}

	if profile.Attendance < 70 {
		warnings = append(warnings, fmt.Sprintf("Low attendance (%s%%) - Consider intervention", formatNumber(profile.Attendance)))
	}

	if profile.StudyHours < 2 {
		warnings = append(warnings, fmt.Sprintf("Very low study hours (%s hrs/day)", formatNumber(profile.StudyHours)))
	} else if profile.StudyHours > 10 {
		warnings = append(warnings, fmt.Sprintf("Very high study hours (%s hrs/day) - Risk of burnout", formatNumber(profile.StudyHours)))
	}

	if profile.SleepHours < 6 {
		warnings = append(warnings, fmt.Sprintf("Insufficient sleep (%s hrs/night)", formatNumber(profile.SleepHours)))
	} else if profile.SleepHours > 12 {
		warnings = append(warnings, fmt.Sprintf("Excessive sleep (%s hrs/night)", formatNumber(profile.SleepHours)))
	}

	if profile.MentalHealth == "Poor" || profile.MentalHealth == "Fair" {
		warnings = append(warnings, "Mental health concerns detected")
	}

	if profile.FinancialStatus == "Struggling" {
		warnings = append(warnings, "Financial struggles may impact academic performance")
	}

	return warnings
}

func isValidOption(field, value string) bool {
	for _, option := range config.CategoricalOptions[field] {
		if value == option {
			return true
		}
	}
	return false
}

// numericValue coerces JSON numbers, Go numeric types and numeric strings
// to float64.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
