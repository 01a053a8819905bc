// Package segmenter splits extracted contract text into ordered clauses.
//
// Legal documents are unreliably formatted, so segmentation cascades through
// three tiers: explicit clause numbering, blank-line paragraphs, and finally
// sentences. Later tiers trade semantic precision for guaranteed coverage.
package segmenter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const defaultMinClauseChars = 20

// agreementTitle is a known un-numbered heading that should participate in
// numbered splitting as clause index 0.
const agreementTitle = "WEBSITE DESIGN AGREEMENT"

// clauseMarker matches "newline, one-or-two-digit number, period, space".
var clauseMarker = regexp.MustCompile(`\n\d{1,2}\. `)

type Segmenter struct {
	MinClauseChars int
}

func New(minClauseChars int) *Segmenter {
	if minClauseChars <= 0 {
		minClauseChars = defaultMinClauseChars
	}
	return &Segmenter{MinClauseChars: minClauseChars}
}

// Segment returns the ordered clauses of text. Clauses are trimmed and
// strictly longer than MinClauseChars runes.
func (s *Segmenter) Segment(text string) []string {
	text = strings.Replace(text, agreementTitle, "0. "+agreementTitle, 1)

	if clauses := s.splitNumbered(text); len(clauses) > 0 {
		return clauses
	}
	if clauses := s.splitOn(text, "\n\n"); len(clauses) > 0 {
		return clauses
	}
	return s.splitOn(text, ". ")
}

// splitNumbered splits on clause markers while retaining each marker as the
// head of its clause. The text before the first marker is a preamble and is
// kept as its own clause when long enough. Without any marker the tier
// yields nothing and segmentation falls through.
func (s *Segmenter) splitNumbered(text string) []string {
	marks := clauseMarker.FindAllStringIndex(text, -1)
	if len(marks) == 0 {
		return nil
	}

	clauses := make([]string, 0, len(marks)+1)
	if preamble := strings.TrimSpace(text[:marks[0][0]]); s.longEnough(preamble) {
		clauses = append(clauses, preamble)
	}
	for i, mark := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		if clause := strings.TrimSpace(text[mark[0]:end]); s.longEnough(clause) {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

func (s *Segmenter) splitOn(text, sep string) []string {
	parts := strings.Split(text, sep)
	clauses := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); s.longEnough(trimmed) {
			clauses = append(clauses, trimmed)
		}
	}
	return clauses
}

func (s *Segmenter) longEnough(clause string) bool {
	return utf8.RuneCountInString(clause) > s.MinClauseChars
}
