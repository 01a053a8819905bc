package risk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon maps lowercase risk-relevant terms to human-readable descriptions.
type Lexicon map[string]string

func defaultLexicon() Lexicon {
	return Lexicon{
		"assignment":   "allows transfer of rights without restrictions",
		"ten":          "contains ambiguous numeric thresholds",
		"business":     "affects multiple business entities, increasing exposure",
		"party":        "unclear responsibilities or obligations",
		"confidential": "lack of proper confidentiality clauses",
	}
}

// LoadLexicon returns the built-in lexicon, extended and overridden by the
// YAML mapping at path when one is configured.
func LoadLexicon(path string) (Lexicon, error) {
	lexicon := defaultLexicon()
	if path == "" {
		return lexicon, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read risk lexicon: %w", err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("decode risk lexicon %s: %w", path, err)
	}
	for term, description := range overrides {
		lexicon[term] = description
	}
	return lexicon, nil
}
