// Package docx extracts plain text from Word documents by reading
// word/document.xml out of the OOXML zip container. Same best-effort policy
// as the PDF extractor: any failure degrades to empty text.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"strings"
)

const documentEntry = "word/document.xml"

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract joins all paragraph texts with newlines.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		slog.WarnContext(ctx, "docx open failed", "path", path, "error", err)
		return "", nil
	}
	defer zr.Close()

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == documentEntry {
			entry = f
			break
		}
	}
	if entry == nil {
		slog.WarnContext(ctx, "docx has no document part", "path", path)
		return "", nil
	}

	rc, err := entry.Open()
	if err != nil {
		slog.WarnContext(ctx, "docx document part open failed", "path", path, "error", err)
		return "", nil
	}
	defer rc.Close()

	paragraphs, err := parseParagraphs(rc)
	if err != nil {
		slog.WarnContext(ctx, "docx parsing failed", "path", path, "error", err)
		return "", nil
	}
	return strings.Join(paragraphs, "\n"), nil
}

// parseParagraphs streams the document XML, collecting the character data of
// w:t runs and closing a paragraph at each w:p end tag.
func parseParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inTextRun  bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inTextRun {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
