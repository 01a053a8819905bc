// Package risk scores clause risk with the pre-trained linear engine and
// derives a human-readable justification from feature attributions. Every
// degraded state maps to a fixed sentinel; a request is never failed here.
package risk

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/model"
)

const (
	notLoadedJustification   = "Risk model or vectorizer not loaded."
	noExplainerJustification = "Explainability not available."
)

const defaultTopFeatures = 5

type Scorer struct {
	engine      *model.Engine
	explainer   *model.LinearExplainer
	lexicon     Lexicon
	topFeatures int
}

// NewScorer builds a risk scorer. engine and explainer may be nil; calls
// then degrade per the sentinel policy.
func NewScorer(engine *model.Engine, explainer *model.LinearExplainer, lexicon Lexicon, topFeatures int) *Scorer {
	if topFeatures <= 0 {
		topFeatures = defaultTopFeatures
	}
	if lexicon == nil {
		lexicon = defaultLexicon()
	}
	return &Scorer{
		engine:      engine,
		explainer:   explainer,
		lexicon:     lexicon,
		topFeatures: topFeatures,
	}
}

func (s *Scorer) Score(ctx context.Context, clause string) domain.RiskAssessment {
	if !s.engine.Ready() {
		return domain.RiskAssessment{
			Level:         domain.UnknownRiskLevel,
			Confidence:    0.0,
			Justification: notLoadedJustification,
		}
	}

	vec := s.engine.Vectorize(clause)
	level, err := s.engine.Predict(vec)
	if err != nil {
		slog.WarnContext(ctx, "risk prediction failed", "error", err)
		return domain.RiskAssessment{
			Level:         domain.UnknownRiskLevel,
			Confidence:    0.0,
			Justification: "Risk prediction error: " + err.Error(),
		}
	}
	probs, err := s.engine.PredictProba(vec)
	if err != nil {
		slog.WarnContext(ctx, "risk prediction failed", "error", err)
		return domain.RiskAssessment{
			Level:         domain.UnknownRiskLevel,
			Confidence:    0.0,
			Justification: "Risk prediction error: " + err.Error(),
		}
	}

	return domain.RiskAssessment{
		Level:         level,
		Confidence:    maxOf(probs),
		Justification: s.explain(vec),
	}
}

// explain computes the top feature attributions for vec and renders them.
// Explainer failures are a recoverable degradation, not a request failure.
func (s *Scorer) explain(vec []float64) string {
	if s.explainer == nil {
		return noExplainerJustification
	}

	attributions, err := s.explainer.Attributions(vec)
	if err != nil {
		return "Explainability error: " + err.Error()
	}

	names := s.engine.FeatureNames()
	features := make([]domain.FeatureAttribution, 0, len(attributions))
	for i, value := range attributions {
		if i >= len(names) {
			break
		}
		features = append(features, domain.FeatureAttribution{Term: names[i], Value: value})
	}
	sort.SliceStable(features, func(i, j int) bool {
		return abs(features[i].Value) > abs(features[j].Value)
	})
	if len(features) > s.topFeatures {
		features = features[:s.topFeatures]
	}
	return renderJustification(s.lexicon, features)
}

func maxOf(values []float64) float64 {
	best := 0.0
	for _, v := range values {
		if v > best {
			best = v
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
