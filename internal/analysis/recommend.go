package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

// DefaultRecommendThreshold marks a factor as under-performing when its
// score falls below it.
const DefaultRecommendThreshold = 0.5

// Recommendation is the guidance for one under-performing factor.
type Recommendation struct {
	Factor      string   `json:"factor"`
	DisplayName string   `json:"display_name"`
	Score       float64  `json:"score"`
	Severity    string   `json:"severity"`
	Actions     []string `json:"actions"`
}

// Advice is the full recommendation output. NoActionNeeded distinguishes
// "all factors healthy" from an empty-but-ambiguous result.
type Advice struct {
	NoActionNeeded  bool             `json:"no_action_needed"`
	FocusAreas      []string         `json:"focus_areas,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Recommend selects guidance for every factor scoring below the default
// threshold, worst first, limited to the top 3.
func Recommend(scores FactorScores) Advice {
	return RecommendWithOptions(scores, DefaultRecommendThreshold, TopFactorCount)
}

// RecommendWithOptions is Recommend with a caller-supplied threshold and
// limit. Guidance comes from the static recommendation table bucketed by
// severity; factors absent from the table get generic templated guidance.
func RecommendWithOptions(scores FactorScores, threshold float64, limit int) Advice {
	type lowFactor struct {
		name  string
		score float64
	}

	low := make([]lowFactor, 0, len(scores))
	for _, factor := range config.FactorOrder {
		score, ok := scores[factor]
		if !ok {
			continue
		}
		if score < threshold {
			low = append(low, lowFactor{name: factor, score: score})
		}
	}

	if len(low) == 0 {
		return Advice{NoActionNeeded: true}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].score < low[j].score
	})
	if len(low) > limit {
		low = low[:limit]
	}

	advice := Advice{
		FocusAreas:      make([]string, 0, len(low)),
		Recommendations: make([]Recommendation, 0, len(low)),
	}

	for _, lf := range low {
		displayName := config.DisplayName(lf.name)
		advice.FocusAreas = append(advice.FocusAreas, displayName)
		advice.Recommendations = append(advice.Recommendations, Recommendation{
			Factor:      lf.name,
			DisplayName: displayName,
			Score:       lf.score,
			Severity:    severityFor(lf.score),
			Actions:     actionsFor(lf.name, displayName, lf.score),
		})
	}

	return advice
}

// severityFor buckets a score: "low" below 50 on the display scale,
// "medium" otherwise.
func severityFor(score float64) string {
	if score*100 < 50 {
		return config.SeverityLow
	}
	return config.SeverityMedium
}

func actionsFor(factor, displayName string, score float64) []string {
	buckets, ok := config.Recommendations[factor]
	if !ok {
		lower := strings.ToLower(displayName)
		return []string{
			fmt.Sprintf("Focus on improving %s", lower),
			fmt.Sprintf("Set specific goals for %s", lower),
			"Track progress weekly",
		}
	}

	actions, ok := buckets[severityFor(score)]
	if !ok {
		// Some factors only carry a "low" bucket; use it rather than fail.
		actions = buckets[config.SeverityLow]
	}

	out := make([]string, len(actions))
	copy(out, actions)
	return out
}
