package analysis

import (
	"math"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

// normalizeContinuous maps a continuous value into [0,1] with clamped
// linear interpolation: values at or below lo score 0, at or above hi
// score 1. The normalization windows sit inside the valid input domain,
// so scores saturate at the edges rather than extrapolating.
func normalizeContinuous(value, lo, hi float64) float64 {
	if value <= lo {
		return 0.0
	}
	if value >= hi {
		return 1.0
	}
	return (value - lo) / (hi - lo)
}

// round4 rounds to 4 decimal places, the precision of every probability
// the engine emits.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// CalculateFactorScores converts a validated profile into the nine
// normalized factor scores. Every enum member has a mapping entry, so a
// valid profile always yields a complete score map.
func CalculateFactorScores(profile StudentProfile) FactorScores {
	scores := make(FactorScores, len(config.FactorOrder))

	for _, factor := range config.NumericFactors {
		bounds := config.ScoreBounds[factor]
		scores[factor] = normalizeContinuous(profile.Numeric(factor), bounds.Min, bounds.Max)
	}

	for _, factor := range config.CategoricalFactors {
		scores[factor] = config.ScoreMappings[factor][profile.Categorical(factor)]
	}

	return scores
}

// AggregateScore computes the weighted success probability from factor
// scores, rounded to 4 decimal places. Weights sum to 1.0 and each score
// is in [0,1], so the result is guaranteed in [0,1].
func AggregateScore(scores FactorScores) float64 {
	total := 0.0
	for factor, score := range scores {
		total += score * config.WeightOf(factor)
	}
	return round4(total)
}

// ClassifyRisk maps a success probability onto a risk band. Bands are
// scanned in ascending order of min with half-open matching, except the
// top band which closes at 1.0. Scores outside [0,1] fall through to the
// Unknown sentinel.
func ClassifyRisk(score float64) RiskAssessment {
	for i, band := range config.RiskBands {
		top := i == len(config.RiskBands)-1
		if score >= band.Min && (score < band.Max || (top && score <= band.Max)) {
			return RiskAssessment{
				Level:       band.Level,
				Label:       band.Label,
				Color:       band.Color,
				Description: band.Description,
				Score:       score,
			}
		}
	}

	unknown := config.UnknownBand
	return RiskAssessment{
		Level:       unknown.Level,
		Label:       unknown.Label,
		Color:       unknown.Color,
		Description: unknown.Description,
		Score:       score,
	}
}
