// Package export serializes prediction results into the payload shapes the
// dashboard downloads: indented JSON and a two-column CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/analysis"
	"github.com/sujalvaghasiya12/Edu-Pulse---Student-Success-Analytics/internal/config"
)

// JSON renders a prediction as an indented JSON document.
func JSON(result analysis.PredictionResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// CSV renders the key metrics of a prediction as Metric,Value rows:
// success probability, risk level, then one row per factor score in
// canonical order.
func CSV(result analysis.PredictionResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Metric", "Value"},
		{"Success Probability", formatFloat(result.SuccessProbability)},
		{"Risk Level", result.RiskAssessment.Label},
	}

	for _, factor := range config.FactorOrder {
		score, ok := result.FactorScores[factor]
		if !ok {
			continue
		}
		records = append(records, []string{config.DisplayName(factor), formatFloat(score)})
	}

	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	w.Flush()

	return buf.String(), w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
