package ports

import (
	"context"
	"io"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
)

// TextExtractor extracts best-effort plain text from a stored document.
// Extraction failures degrade to empty text; a returned error means the file
// itself could not be reached.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ClauseSegmenter splits extracted text into ordered clauses.
type ClauseSegmenter interface {
	Segment(text string) []string
}

// ClauseClassifier predicts a clause type. It never fails: collaborator
// errors degrade to the documented sentinel result.
type ClauseClassifier interface {
	Classify(ctx context.Context, clause string) domain.Classification
}

// RiskScorer predicts a risk level with a human-readable justification. It
// never fails: collaborator errors degrade to the documented sentinel result.
type RiskScorer interface {
	Score(ctx context.Context, clause string) domain.RiskAssessment
}

// UploadStore holds the uploaded document for the duration of one request.
type UploadStore interface {
	Save(ctx context.Context, key string, data io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}
