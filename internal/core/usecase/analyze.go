package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
	"github.com/mkoval/legal-clause-analysis/internal/core/ports"
)

// AnalyzeDocumentUseCase runs the single-request pipeline: persist the
// upload, extract text, segment into clauses, then classify and score each
// clause in document order.
type AnalyzeDocumentUseCase struct {
	store      ports.UploadStore
	extractors map[string]ports.TextExtractor
	segmenter  ports.ClauseSegmenter
	classifier ports.ClauseClassifier
	scorer     ports.RiskScorer
}

// NewAnalyzeDocumentUseCase wires the pipeline. The extractors map keys are
// the allowed file extensions (lowercase, without dot).
func NewAnalyzeDocumentUseCase(
	store ports.UploadStore,
	extractors map[string]ports.TextExtractor,
	segmenter ports.ClauseSegmenter,
	classifier ports.ClauseClassifier,
	scorer ports.RiskScorer,
) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{
		store:      store,
		extractors: extractors,
		segmenter:  segmenter,
		classifier: classifier,
		scorer:     scorer,
	}
}

func (uc *AnalyzeDocumentUseCase) Analyze(ctx context.Context, filename string, body io.Reader) (*domain.Analysis, error) {
	ext := fileExtension(filename)
	extractor, ok := uc.extractors[ext]
	if !ok {
		return nil, domain.WrapError(domain.ErrInvalidFileType, "validate upload", fmt.Errorf("extension %q", ext))
	}

	key := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(filename))
	path, err := uc.store.Save(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	text := uc.extractAndDiscard(ctx, extractor, path)
	if text == "" {
		return nil, domain.WrapError(domain.ErrNoReadableText, "extract text", fmt.Errorf("file %q", filename))
	}

	clauses := uc.segmenter.Segment(text)
	if len(clauses) == 0 {
		return nil, domain.WrapError(domain.ErrNoClauses, "segment text", fmt.Errorf("file %q", filename))
	}

	records := make([]domain.ClauseAnalysis, 0, len(clauses))
	for _, clause := range clauses {
		records = append(records, domain.ClauseAnalysis{
			Clause: clause,
			Phase1: uc.classifier.Classify(ctx, clause),
			Phase3: uc.scorer.Score(ctx, clause),
		})
	}

	return &domain.Analysis{
		TotalClauses: len(records),
		Records:      records,
	}, nil
}

// extractAndDiscard deletes the temp upload immediately after extraction,
// on the success and failure path alike.
func (uc *AnalyzeDocumentUseCase) extractAndDiscard(ctx context.Context, extractor ports.TextExtractor, path string) string {
	defer func() {
		if err := uc.store.Remove(ctx, path); err != nil {
			slog.WarnContext(ctx, "temp upload cleanup failed", "path", path, "error", err)
		}
	}()

	text, err := extractor.Extract(ctx, path)
	if err != nil {
		slog.WarnContext(ctx, "text extraction failed", "path", path, "error", err)
		return ""
	}
	return text
}

func fileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
