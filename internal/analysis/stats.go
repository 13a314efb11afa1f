package analysis

import (
	"math"
	"sort"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

// Statistics is a basic descriptive summary of a score list, each value
// rounded to 2 decimal places.
type Statistics struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// CalculateStatistics summarizes a list of scores. An empty list yields
// the zero summary.
func CalculateStatistics(scores []float64) Statistics {
	if len(scores) == 0 {
		return Statistics{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	sum := 0.0
	for _, s := range sorted {
		sum += s
	}
	mean := sum / float64(len(sorted))

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	// Population standard deviation.
	variance := 0.0
	for _, s := range sorted {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(sorted))

	return Statistics{
		Mean:   round2(mean),
		Median: round2(median),
		Std:    round2(math.Sqrt(variance)),
		Min:    round2(sorted[0]),
		Max:    round2(sorted[len(sorted)-1]),
	}
}

// NormalizeForDisplay scales [0,1] factor scores to the 0-100 display
// scale, 1 decimal place.
func NormalizeForDisplay(scores FactorScores) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for factor, score := range scores {
		out[factor] = math.Round(score*100*10) / 10
	}
	return out
}

// CategoryBreakdown is one category's aggregate on the 0-100 scale,
// normalized against the category's total weight mass.
type CategoryBreakdown struct {
	Category string   `json:"category"`
	Score    float64  `json:"score"`
	Weight   float64  `json:"weight"`
	Factors  []string `json:"factors"`
}

// ScoreBreakdown aggregates factor scores per category for display.
func ScoreBreakdown(scores FactorScores) []CategoryBreakdown {
	breakdown := make([]CategoryBreakdown, 0, len(config.CategoryOrder))

	for _, category := range config.CategoryOrder {
		factors := config.Weights[category]

		categoryScore := 0.0
		maxPossible := 0.0
		names := make([]string, 0, len(factors))

		for _, factor := range config.FactorOrder {
			weight, ok := factors[factor]
			if !ok {
				continue
			}
			categoryScore += scores[factor] * weight
			maxPossible += weight
			names = append(names, factor)
		}

		normalized := 0.0
		if maxPossible > 0 {
			normalized = categoryScore / maxPossible * 100
		}

		breakdown = append(breakdown, CategoryBreakdown{
			Category: config.DisplayName(category),
			Score:    math.Round(normalized*10) / 10,
			Weight:   math.Round(maxPossible*100*10) / 10,
			Factors:  names,
		})
	}

	return breakdown
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
