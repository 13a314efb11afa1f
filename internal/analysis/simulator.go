package analysis

import (
	"fmt"
	"math"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

// SimulateIntervention recomputes a hypothetical success probability after
// applying per-factor score deltas. Pure: the input scores are never
// mutated. Each new score is clamped at 1.0 on the high side only; a
// negative delta passes through unclamped. An empty delta map reproduces
// AggregateScore exactly.
func SimulateIntervention(scores FactorScores, deltas map[string]float64) float64 {
	total := 0.0

	for factor, score := range scores {
		newScore := math.Min(1.0, score+deltas[factor])
		total += newScore * config.WeightOf(factor)
	}

	return round4(total)
}

// ImprovementPlan describes the gap between a current probability and the
// success target.
type ImprovementPlan struct {
	Needed     float64 `json:"needed"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// ImprovementNeeded computes how far a score sits below the target
// (default config.SuccessTarget) and the relative improvement required.
func ImprovementNeeded(current, target float64) ImprovementPlan {
	improvement := math.Max(0, target-current)

	if improvement == 0 {
		return ImprovementPlan{Status: "Target achieved"}
	}

	percentage := 100.0
	if current > 0 {
		percentage = improvement / current * 100
	}

	return ImprovementPlan{
		Needed:     math.Round(improvement*1000) / 1000,
		Percentage: math.Round(percentage*10) / 10,
		Status:     fmt.Sprintf("Need %.1f%% improvement", improvement*100),
	}
}
