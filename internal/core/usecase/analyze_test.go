package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
	"github.com/mkoval/legal-clause-analysis/internal/core/ports"
)

type storeFake struct {
	saveErr error
	saved   []string
	removed []string
}

func (f *storeFake) Save(_ context.Context, key string, data io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if _, err := io.ReadAll(data); err != nil {
		return "", err
	}
	path := "/tmp/" + key
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *storeFake) Remove(_ context.Context, path string) error {
	f.removed = append(f.removed, path)
	return nil
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, string) (string, error) {
	return f.text, f.err
}

type segmenterFake struct {
	clauses []string
}

func (f *segmenterFake) Segment(string) []string { return f.clauses }

type classifierFake struct{}

func (classifierFake) Classify(_ context.Context, clause string) domain.Classification {
	return domain.Classification{PredictedType: "Confidentiality", Confidence: 0.9}
}

type scorerFake struct{}

func (scorerFake) Score(_ context.Context, clause string) domain.RiskAssessment {
	return domain.RiskAssessment{Level: "High", Confidence: 0.8, Justification: "because " + clause}
}

func newUseCase(store *storeFake, extractor ports.TextExtractor, seg *segmenterFake) *AnalyzeDocumentUseCase {
	return NewAnalyzeDocumentUseCase(
		store,
		map[string]ports.TextExtractor{"pdf": extractor, "docx": extractor},
		seg,
		classifierFake{},
		scorerFake{},
	)
}

func TestAnalyzeRejectsDisallowedExtension(t *testing.T) {
	store := &storeFake{}
	uc := newUseCase(store, &extractorFake{}, &segmenterFake{})

	_, err := uc.Analyze(context.Background(), "contract.txt", strings.NewReader("x"))

	if !domain.IsKind(err, domain.ErrInvalidFileType) {
		t.Fatalf("err = %v, want ErrInvalidFileType", err)
	}
	if len(store.saved) != 0 {
		t.Fatal("nothing should be persisted for a rejected upload")
	}
}

func TestAnalyzeRejectsEmptyFilename(t *testing.T) {
	uc := newUseCase(&storeFake{}, &extractorFake{}, &segmenterFake{})

	_, err := uc.Analyze(context.Background(), "", strings.NewReader("x"))

	if !domain.IsKind(err, domain.ErrInvalidFileType) {
		t.Fatalf("err = %v, want ErrInvalidFileType", err)
	}
}

func TestAnalyzeEmptyTextRemovesUpload(t *testing.T) {
	store := &storeFake{}
	uc := newUseCase(store, &extractorFake{text: ""}, &segmenterFake{})

	_, err := uc.Analyze(context.Background(), "contract.pdf", strings.NewReader("x"))

	if !domain.IsKind(err, domain.ErrNoReadableText) {
		t.Fatalf("err = %v, want ErrNoReadableText", err)
	}
	if len(store.removed) != 1 {
		t.Fatalf("removed = %v, want exactly one cleanup", store.removed)
	}
}

func TestAnalyzeExtractionErrorRemovesUpload(t *testing.T) {
	store := &storeFake{}
	uc := newUseCase(store, &extractorFake{err: errors.New("boom")}, &segmenterFake{})

	_, err := uc.Analyze(context.Background(), "contract.pdf", strings.NewReader("x"))

	if !domain.IsKind(err, domain.ErrNoReadableText) {
		t.Fatalf("err = %v, want ErrNoReadableText", err)
	}
	if len(store.removed) != 1 {
		t.Fatalf("removed = %v, want exactly one cleanup", store.removed)
	}
}

func TestAnalyzeZeroClauses(t *testing.T) {
	store := &storeFake{}
	uc := newUseCase(store, &extractorFake{text: "some text"}, &segmenterFake{})

	_, err := uc.Analyze(context.Background(), "contract.pdf", strings.NewReader("x"))

	if !domain.IsKind(err, domain.ErrNoClauses) {
		t.Fatalf("err = %v, want ErrNoClauses", err)
	}
	if len(store.removed) != 1 {
		t.Fatal("upload must be removed before segmentation verdict")
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	store := &storeFake{}
	clauses := []string{"1. first clause body", "2. second clause body"}
	uc := newUseCase(store, &extractorFake{text: "some text"}, &segmenterFake{clauses: clauses})

	analysis, err := uc.Analyze(context.Background(), "Contract Final.PDF", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if analysis.TotalClauses != len(analysis.Records) {
		t.Fatalf("TotalClauses = %d, records = %d", analysis.TotalClauses, len(analysis.Records))
	}
	if analysis.TotalClauses != 2 {
		t.Fatalf("TotalClauses = %d, want 2", analysis.TotalClauses)
	}
	for i, record := range analysis.Records {
		if record.Clause != clauses[i] {
			t.Fatalf("record %d clause = %q, want %q (document order)", i, record.Clause, clauses[i])
		}
		if record.Phase1.PredictedType == "" || record.Phase3.Justification == "" {
			t.Fatalf("record %d has empty phase fields: %+v", i, record)
		}
	}
	if len(store.removed) != 1 {
		t.Fatal("upload must be removed exactly once")
	}
	if strings.Contains(store.saved[0], " ") {
		t.Fatalf("saved key %q should be sanitized", store.saved[0])
	}
}

func TestAnalyzeSaveFailure(t *testing.T) {
	store := &storeFake{saveErr: errors.New("disk full")}
	uc := newUseCase(store, &extractorFake{text: "some text"}, &segmenterFake{})

	_, err := uc.Analyze(context.Background(), "contract.pdf", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error when the upload cannot be persisted")
	}
	if len(store.removed) != 0 {
		t.Fatal("nothing to remove when save failed")
	}
}
