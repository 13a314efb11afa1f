// Package analysis implements the EduPulse scoring pipeline: input
// sanitization and validation, per-factor score normalization, weighted
// aggregation into a success probability, risk classification, factor
// impact ranking, intervention simulation and recommendation selection.
// Every operation is synchronous, pure and O(number of factors).
package analysis

// Predictor runs the rule-based student success pipeline. It carries no
// mutable state; the scoring tables it reads are process-wide constants,
// so a single Predictor is safe for any number of concurrent callers.
type Predictor struct{}

// NewPredictor creates a predictor.
func NewPredictor() *Predictor {
	return &Predictor{}
}

// Predict converts a validated profile into a complete prediction:
// factor scores, weighted success probability, risk assessment and the
// top contributing factors.
func (p *Predictor) Predict(profile StudentProfile) PredictionResult {
	factorScores := CalculateFactorScores(profile)
	successProbability := AggregateScore(factorScores)

	return PredictionResult{
		SuccessProbability: successProbability,
		RiskAssessment:     ClassifyRisk(successProbability),
		FactorScores:       factorScores,
		TopFactors:         IdentifyKeyFactors(factorScores, TopFactorCount),
		Profile:            profile,
	}
}

// PredictWithModel is the integration point for a trained model. No model
// is wired up yet, so it delegates to the rule-based pipeline; a future
// implementation would transform the profile into the model's feature
// space and return its probability instead.
func (p *Predictor) PredictWithModel(profile StudentProfile) PredictionResult {
	return p.Predict(profile)
}
