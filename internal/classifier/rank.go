package classifier

import (
	"math"
	"sort"

	"github.com/verdantlabs/greenproof/internal/model"
)

const (
	// maxResults caps how many ranked labels a single classification keeps.
	maxResults = 5
	// minConfidence is the noise floor; results at or below it are dropped.
	minConfidence = 0.10
)

// softmax converts raw logits to probabilities.
func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}

	maxLogit := float64(logits[0])
	for _, l := range logits[1:] {
		if float64(l) > maxLogit {
			maxLogit = float64(l)
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(float64(l) - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// rank pairs probabilities with their labels and sorts by descending
// confidence. A shorter label slice truncates the ranking.
func rank(probs []float64, labels []string) []model.ClassificationResult {
	n := len(probs)
	if len(labels) < n {
		n = len(labels)
	}

	results := make([]model.ClassificationResult, n)
	for i := 0; i < n; i++ {
		results[i] = model.ClassificationResult{Label: labels[i], Confidence: probs[i]}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results
}

// filterResults applies the retention policy to a ranked result list: keep
// at most maxResults entries and drop anything at or below minConfidence.
// An empty result is a valid "nothing recognizable" outcome.
func filterResults(results []model.ClassificationResult) []model.ClassificationResult {
	filtered := make([]model.ClassificationResult, 0, maxResults)
	for _, r := range results {
		if len(filtered) == maxResults {
			break
		}
		if r.Confidence <= minConfidence {
			// Results are sorted, so everything after this is below the
			// floor too.
			break
		}
		filtered = append(filtered, r)
	}
	return filtered
}
