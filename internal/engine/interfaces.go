package engine

import (
	"context"
	"image"

	"github.com/verdantlabs/greenproof/internal/model"
)

// Classifier defines the contract for on-device image classification.
// Implementations must be safe for concurrent Classify calls; the model is
// loaded once and read-only per invocation.
type Classifier interface {
	// Classify produces ranked (label, confidence) results for one image,
	// sorted by descending confidence, already filtered to the retained set.
	// An empty result is a valid "nothing recognizable" outcome.
	Classify(ctx context.Context, img image.Image) ([]model.ClassificationResult, error)
	// Close releases any resources held by the underlying model session.
	Close() error
}
