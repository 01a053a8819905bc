// Package model loads the pre-trained statistical artifacts the pipeline
// depends on. Artifacts are opaque JSON coefficient dumps produced by the
// training side; this package only restores them and runs inference.
//
// A prediction artifact comes in two shapes: a composite pipeline bundling
// named steps {tfidf, clf}, or a bare linear model paired with a standalone
// vectorizer artifact. Both resolve at load time into an Engine exposing
// Vectorize / Predict / PredictProba.
package model

import (
	"encoding/json"
	"fmt"
	"os"
)

type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf,omitempty"`
}

type linearArtifact struct {
	Classes      []string    `json:"classes"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

type explainerArtifact struct {
	Coefficients []float64 `json:"coefficients"`
	FeatureMeans []float64 `json:"feature_means,omitempty"`
}

// predictionArtifact is the on-disk shape of a model artifact. A non-nil
// Steps field marks the composite pipeline variant.
type predictionArtifact struct {
	Steps *struct {
		TFIDF *vectorizerArtifact `json:"tfidf"`
		CLF   *linearArtifact     `json:"clf"`
	} `json:"steps,omitempty"`

	linearArtifact
}

// Engine is the uniform inference interface resolved from either artifact
// shape. Vec may be nil when a bare model artifact was loaded without a
// standalone vectorizer; callers check Ready before vectorizing.
type Engine struct {
	Vec   *Vectorizer
	Model *LinearModel
}

// Ready reports whether both vectorization and prediction are available.
func (e *Engine) Ready() bool {
	return e != nil && e.Vec != nil && e.Model != nil
}

func (e *Engine) Vectorize(text string) []float64 {
	return e.Vec.Transform(text)
}

func (e *Engine) Predict(vec []float64) (string, error) {
	return e.Model.Predict(vec)
}

func (e *Engine) PredictProba(vec []float64) ([]float64, error) {
	return e.Model.PredictProba(vec)
}

func (e *Engine) FeatureNames() []string {
	return e.Vec.FeatureNames()
}

// LoadEngine reads a prediction artifact and resolves it into an Engine.
// For the bare-model variant, vectorizerPath supplies the standalone
// vectorizer; an empty path or a missing file leaves Engine.Vec nil, which
// is the degraded mode the scorer handles at request time.
func LoadEngine(modelPath, vectorizerPath string) (*Engine, error) {
	raw, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact predictionArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", modelPath, err)
	}

	if artifact.Steps != nil {
		if artifact.Steps.TFIDF == nil || artifact.Steps.CLF == nil {
			return nil, fmt.Errorf("pipeline artifact %s is missing tfidf or clf step", modelPath)
		}
		vec, err := newVectorizer(artifact.Steps.TFIDF)
		if err != nil {
			return nil, fmt.Errorf("pipeline artifact %s: %w", modelPath, err)
		}
		clf, err := newLinearModel(artifact.Steps.CLF)
		if err != nil {
			return nil, fmt.Errorf("pipeline artifact %s: %w", modelPath, err)
		}
		if clf.Dim() != vec.Dim() {
			return nil, fmt.Errorf("pipeline artifact %s: model dim %d != vectorizer dim %d", modelPath, clf.Dim(), vec.Dim())
		}
		return &Engine{Vec: vec, Model: clf}, nil
	}

	clf, err := newLinearModel(&artifact.linearArtifact)
	if err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", modelPath, err)
	}

	engine := &Engine{Model: clf}
	if vectorizerPath != "" {
		vec, err := LoadVectorizer(vectorizerPath)
		if err != nil {
			return engine, err
		}
		if vec.Dim() != clf.Dim() {
			return engine, fmt.Errorf("vectorizer dim %d != model dim %d", vec.Dim(), clf.Dim())
		}
		engine.Vec = vec
	}
	return engine, nil
}

// LoadVectorizer reads a standalone vectorizer artifact.
func LoadVectorizer(path string) (*Vectorizer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectorizer artifact: %w", err)
	}
	var artifact vectorizerArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("decode vectorizer artifact %s: %w", path, err)
	}
	return newVectorizer(&artifact)
}

// LoadExplainer reads a feature-attribution explainer artifact.
func LoadExplainer(path string) (*LinearExplainer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read explainer artifact: %w", err)
	}
	var artifact explainerArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("decode explainer artifact %s: %w", path, err)
	}
	return newLinearExplainer(&artifact)
}
