package model

import (
	"fmt"
	"math"
)

// LinearModel is a pre-trained linear classifier restored from an artifact:
// one coefficient row plus sigmoid for binary problems, one row per class
// plus softmax otherwise.
type LinearModel struct {
	classes    []string
	coef       [][]float64
	intercepts []float64
}

func newLinearModel(a *linearArtifact) (*LinearModel, error) {
	if len(a.Classes) < 2 {
		return nil, fmt.Errorf("model artifact needs at least 2 classes, got %d", len(a.Classes))
	}
	wantRows := len(a.Classes)
	if len(a.Classes) == 2 {
		wantRows = 1
	}
	if len(a.Coefficients) != wantRows {
		return nil, fmt.Errorf("model artifact has %d coefficient rows, want %d", len(a.Coefficients), wantRows)
	}
	if len(a.Intercepts) != wantRows {
		return nil, fmt.Errorf("model artifact has %d intercepts, want %d", len(a.Intercepts), wantRows)
	}
	dim := len(a.Coefficients[0])
	for i, row := range a.Coefficients {
		if len(row) != dim {
			return nil, fmt.Errorf("coefficient row %d has length %d, want %d", i, len(row), dim)
		}
	}

	return &LinearModel{
		classes:    a.Classes,
		coef:       a.Coefficients,
		intercepts: a.Intercepts,
	}, nil
}

func (m *LinearModel) Classes() []string {
	return m.classes
}

func (m *LinearModel) Dim() int {
	return len(m.coef[0])
}

// Predict returns the class label with the highest probability.
func (m *LinearModel) Predict(vec []float64) (string, error) {
	probs, err := m.PredictProba(vec)
	if err != nil {
		return "", err
	}
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return m.classes[best], nil
}

// PredictProba returns one probability per class, in class order.
func (m *LinearModel) PredictProba(vec []float64) ([]float64, error) {
	if len(vec) != m.Dim() {
		return nil, fmt.Errorf("input vector length %d, model expects %d", len(vec), m.Dim())
	}

	if len(m.coef) == 1 {
		p := sigmoid(dot(m.coef[0], vec) + m.intercepts[0])
		return []float64{1 - p, p}, nil
	}

	scores := make([]float64, len(m.coef))
	maxScore := math.Inf(-1)
	for i, row := range m.coef {
		scores[i] = dot(row, vec) + m.intercepts[i]
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
	}
	var sum float64
	for i := range scores {
		scores[i] = math.Exp(scores[i] - maxScore)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
	return scores, nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
