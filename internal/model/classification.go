package model

// ClassificationResult is a single ranked label produced by the image
// classifier. A batch of results is always ordered by descending confidence;
// labels within a batch are not required to be unique.
type ClassificationResult struct {
	// Label is the classifier's vocabulary entry for this result. A single
	// label may itself be a comma-separated list of synonymous terms
	// ("pop bottle, soda bottle"), as produced by ImageNet-style label files.
	Label string
	// Confidence is the softmax probability in [0, 1].
	Confidence float64
}
