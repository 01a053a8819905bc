package domain

// Sentinel values reported when a model artifact is unavailable.
const (
	UnclassifiedType = "N/A"
	UnknownRiskLevel = "Unknown"
)

// Classification is the phase 1 result for a single clause.
type Classification struct {
	PredictedType string  `json:"predicted_clause_type"`
	Confidence    float64 `json:"confidence"`
}

// RiskAssessment is the phase 3 result for a single clause.
type RiskAssessment struct {
	Level         string  `json:"risk_level"`
	Confidence    float64 `json:"confidence"`
	Justification string  `json:"justification"`
}

// FeatureAttribution is one vocabulary term's signed contribution to a
// risk prediction.
type FeatureAttribution struct {
	Term  string
	Value float64
}

// ClauseAnalysis pairs a clause with both analysis phases.
type ClauseAnalysis struct {
	Clause string         `json:"clause"`
	Phase1 Classification `json:"phase1"`
	Phase3 RiskAssessment `json:"phase3"`
}

// Analysis is the full per-document result, clauses in document order.
type Analysis struct {
	TotalClauses int              `json:"total_clauses"`
	Records      []ClauseAnalysis `json:"analysis"`
}
