package model

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// minTokenRunes drops single-character tokens, matching the vocabulary the
// vectorizer artifact was trained with.
const minTokenRunes = 2

// Vectorizer is a pre-trained TF-IDF vectorizer restored from an artifact.
// It is read-only after construction and safe for concurrent use.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
	features   []string
}

func newVectorizer(a *vectorizerArtifact) (*Vectorizer, error) {
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer artifact has empty vocabulary")
	}

	features := make([]string, len(a.Vocabulary))
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(features) {
			return nil, fmt.Errorf("vocabulary index %d for %q out of range", idx, term)
		}
		if features[idx] != "" {
			return nil, fmt.Errorf("vocabulary index %d assigned twice", idx)
		}
		features[idx] = term
	}

	idf := a.IDF
	if len(idf) == 0 {
		idf = make([]float64, len(features))
		for i := range idf {
			idf[i] = 1.0
		}
	}
	if len(idf) != len(features) {
		return nil, fmt.Errorf("idf length %d does not match vocabulary size %d", len(idf), len(features))
	}

	return &Vectorizer{
		vocabulary: a.Vocabulary,
		idf:        idf,
		features:   features,
	}, nil
}

// Transform maps text to an l2-normalized tf-idf vector over the artifact
// vocabulary.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.features))
	for _, token := range tokenize(text) {
		if idx, ok := v.vocabulary[token]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// FeatureNames returns the vocabulary terms ordered by feature index. The
// returned slice is shared and must not be mutated.
func (v *Vectorizer) FeatureNames() []string {
	return v.features
}

func (v *Vectorizer) Dim() int {
	return len(v.features)
}

func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			if token := b.String(); len([]rune(token)) >= minTokenRunes {
				out = append(out, token)
			}
			b.Reset()
		}
	}
	for _, r := range s {
		r = unicode.ToLower(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return out
}
