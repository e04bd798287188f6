package model

// VerificationVerdict is the outcome of judging one photo against one claimed
// action category. It is created once per verification attempt and never
// mutated afterwards.
type VerificationVerdict struct {
	// Category is the action the user claimed.
	Category ActionCategory
	// Accepted is true when at least one classification term matched the
	// category's keyword taxonomy.
	Accepted bool
	// MatchedLabels holds the taxonomy keywords that matched, sorted
	// alphabetically for deterministic output. Empty on rejection.
	MatchedLabels []string
	// Classifications is the retained classifier output that was judged,
	// ordered by descending confidence.
	Classifications []ClassificationResult
	// Rationale is the human-readable explanation shown to the user.
	Rationale string
}
