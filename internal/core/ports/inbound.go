package ports

import (
	"context"
	"io"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
)

// DocumentAnalyzer is the inbound contract for the single-request analysis
// pipeline.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, filename string, body io.Reader) (*domain.Analysis, error)
}
