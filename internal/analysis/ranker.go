package analysis

import (
	"sort"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

// TopFactorCount is how many ranked factors a prediction surfaces for
// display. The full ranking stays available through RankFactors.
const TopFactorCount = 3

// RankFactors computes each factor's impact (score x weight) and returns
// the full ranking, sorted descending by impact. Ties keep the canonical
// factor order, so the result is deterministic.
func RankFactors(scores FactorScores) []TopFactor {
	ranked := make([]TopFactor, 0, len(scores))

	for _, factor := range config.FactorOrder {
		score, ok := scores[factor]
		if !ok {
			continue
		}
		ranked = append(ranked, TopFactor{
			Factor: factor,
			Score:  score,
			Impact: score * config.WeightOf(factor),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Impact > ranked[j].Impact
	})

	return ranked
}

// IdentifyKeyFactors returns the top n contributors to the success
// probability.
func IdentifyKeyFactors(scores FactorScores, n int) []TopFactor {
	ranked := RankFactors(scores)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
