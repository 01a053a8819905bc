// Package pdfex extracts plain text from PDF documents. Extraction is
// best-effort: library failures, including panics on malformed files, are
// logged and surfaced as empty text so the orchestrator can answer with a
// single well-defined error.
package pdfex

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract concatenates the text of every page, newline separated. Pages
// yielding no text contribute nothing.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	return extract(ctx, path), nil
}

func extract(ctx context.Context, path string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			slog.WarnContext(ctx, "pdf extraction panicked", "path", path, "panic", r)
			out = ""
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		slog.WarnContext(ctx, "pdf open failed", "path", path, "error", err)
		return ""
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			slog.WarnContext(ctx, "pdf page extraction failed", "path", path, "page", i, "error", err)
			continue
		}
		if content != "" {
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String()
}
