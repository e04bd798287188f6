// Package judge decides whether a set of classification labels plausibly
// depicts a claimed action category. The decision is pure and total: an
// empty classification list is a valid input and yields a rejection, never
// an error.
package judge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verdantlabs/greenproof/internal/model"
	"github.com/verdantlabs/greenproof/internal/taxonomy"
)

// Judge matches classifier output against the action taxonomy.
type Judge struct {
	taxonomy *taxonomy.Taxonomy
}

// New creates a Judge over the given taxonomy.
func New(tax *taxonomy.Taxonomy) *Judge {
	return &Judge{taxonomy: tax}
}

// Verify produces a verdict for one verification attempt. Candidate terms
// are gathered from every retained classification, not just the top one: each
// label is lowercased and split on commas (a single label may list synonymous
// terms), and each trimmed segment contributes both itself and its individual
// words, so "plastic bottle" yields candidates for "plastic" and "bottle".
// The attempt is accepted when any candidate term appears in the category's
// keyword set — a single low-confidence match is sufficient, with no
// confidence weighting. That leniency is deliberate.
func (j *Judge) Verify(classifications []model.ClassificationResult, category model.ActionCategory) model.VerificationVerdict {
	matched := make(map[string]struct{})

	for _, c := range classifications {
		for _, term := range candidateTerms(c.Label) {
			if j.taxonomy.Contains(category, term) {
				matched[term] = struct{}{}
			}
		}
	}

	matchedLabels := make([]string, 0, len(matched))
	for term := range matched {
		matchedLabels = append(matchedLabels, term)
	}
	sort.Strings(matchedLabels)

	accepted := len(matchedLabels) > 0

	return model.VerificationVerdict{
		Category:        category,
		Accepted:        accepted,
		MatchedLabels:   matchedLabels,
		Classifications: classifications,
		Rationale:       j.rationale(accepted, matchedLabels, classifications, category),
	}
}

// candidateTerms flattens one classification label into matchable terms:
// comma-separated segments, trimmed, plus the words of each segment.
func candidateTerms(label string) []string {
	var terms []string
	for _, segment := range strings.Split(strings.ToLower(label), ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		terms = append(terms, segment)
		if strings.ContainsAny(segment, " \t") {
			terms = append(terms, strings.Fields(segment)...)
		}
	}
	return terms
}

// rationale builds the user-facing explanation. On acceptance it names the
// matched terms and the contributing classifications; on rejection it lists
// everything the classifier saw so the user can tell why nothing matched.
func (j *Judge) rationale(accepted bool, matchedLabels []string, classifications []model.ClassificationResult, category model.ActionCategory) string {
	display := j.taxonomy.DisplayName(category)

	if accepted {
		return fmt.Sprintf("Verified as %s: matched %s. Recognized %s.",
			display,
			strings.Join(matchedLabels, ", "),
			formatClassifications(classifications))
	}

	if len(classifications) == 0 {
		return fmt.Sprintf("Could not verify %s: nothing recognizable in the photo.", display)
	}

	return fmt.Sprintf("Could not verify %s. Recognized %s, none of which indicate this action.",
		display,
		formatClassifications(classifications))
}

func formatClassifications(classifications []model.ClassificationResult) string {
	parts := make([]string, len(classifications))
	for i, c := range classifications {
		parts[i] = fmt.Sprintf("%s (%.0f%%)", c.Label, c.Confidence*100)
	}
	return strings.Join(parts, ", ")
}
