package risk

import (
	"strings"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
)

const (
	unclearSentinel     = "Clause risk is unclear from the text."
	justificationSuffix = " Suggest clarifying or adding missing terms to reduce risk."
)

// renderJustification turns signed feature attributions into a
// human-readable phrase per feature. A zero-valued attribution renders as
// "reduces risk"; only strictly positive values increase.
func renderJustification(lexicon Lexicon, features []domain.FeatureAttribution) string {
	if len(features) == 0 {
		return unclearSentinel
	}

	phrases := make([]string, 0, len(features))
	for _, f := range features {
		direction := "reduces"
		if f.Value > 0 {
			direction = "increases"
		}
		if description, ok := lexicon[strings.ToLower(f.Term)]; ok {
			phrases = append(phrases, description+" ("+direction+" risk)")
		} else {
			phrases = append(phrases, "'"+f.Term+"' ("+direction+" risk)")
		}
	}
	return strings.Join(phrases, " ") + justificationSuffix
}
