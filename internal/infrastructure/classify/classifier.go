// Package classify wraps the pre-trained clause-type pipeline. The wrapper
// never fails a request: an absent model or a failed prediction degrades to
// the "N/A" sentinel.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/model"
)

type Classifier struct {
	engine   *model.Engine
	classMap map[int]string
}

// New builds a classifier over the loaded pipeline engine. Either argument
// may be nil/empty; calls then return the degraded-mode sentinel.
func New(engine *model.Engine, classMap map[int]string) *Classifier {
	return &Classifier{engine: engine, classMap: classMap}
}

func (c *Classifier) Classify(ctx context.Context, clause string) domain.Classification {
	result := domain.Classification{PredictedType: domain.UnclassifiedType, Confidence: 0.0}
	if !c.engine.Ready() {
		return result
	}

	vec := c.engine.Vectorize(clause)
	label, err := c.engine.Predict(vec)
	if err != nil {
		slog.WarnContext(ctx, "clause classification failed", "error", err)
		return result
	}
	code, err := strconv.Atoi(label)
	if err != nil {
		slog.WarnContext(ctx, "clause classifier produced non-numeric category code", "label", label)
		return result
	}
	probs, err := c.engine.PredictProba(vec)
	if err != nil {
		slog.WarnContext(ctx, "clause classification failed", "error", err)
		return result
	}

	name, ok := c.classMap[code]
	if !ok {
		name = fmt.Sprintf("Unknown (%d)", code)
	}
	result.PredictedType = name
	result.Confidence = round3(maxOf(probs))
	return result
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

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
