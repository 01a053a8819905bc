package model

import "fmt"

// LinearExplainer attributes a risk prediction to individual features:
// attribution_j = coef_j * (x_j - mean_j), the margin contribution relative
// to the training distribution baseline.
type LinearExplainer struct {
	coef  []float64
	means []float64
}

func newLinearExplainer(a *explainerArtifact) (*LinearExplainer, error) {
	if len(a.Coefficients) == 0 {
		return nil, fmt.Errorf("explainer artifact has no coefficients")
	}
	means := a.FeatureMeans
	if len(means) == 0 {
		means = make([]float64, len(a.Coefficients))
	}
	if len(means) != len(a.Coefficients) {
		return nil, fmt.Errorf("explainer means length %d does not match coefficients %d", len(means), len(a.Coefficients))
	}
	return &LinearExplainer{coef: a.Coefficients, means: means}, nil
}

// Attributions returns one signed contribution per feature of vec.
func (e *LinearExplainer) Attributions(vec []float64) ([]float64, error) {
	if len(vec) != len(e.coef) {
		return nil, fmt.Errorf("input vector length %d, explainer expects %d", len(vec), len(e.coef))
	}
	out := make([]float64, len(vec))
	for i := range vec {
		out[i] = e.coef[i] * (vec[i] - e.means[i])
	}
	return out, nil
}
