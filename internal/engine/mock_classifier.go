package engine

import (
	"context"
	"image"
	"sync"

	"github.com/verdantlabs/greenproof/internal/model"
)

// MockClassifier is a test implementation of the Classifier interface. It
// returns canned classification sequences without invoking real inference.
type MockClassifier struct {
	mu      sync.Mutex
	results []model.ClassificationResult
	err     error
	// Block, when non-nil, is closed by the test to release a pending
	// Classify call. Used to exercise cancellation.
	Block chan struct{}
	calls int
}

// NewMockClassifier creates a mock that returns the given results.
func NewMockClassifier(results []model.ClassificationResult) *MockClassifier {
	return &MockClassifier{results: results}
}

// SetError makes subsequent Classify calls fail with err.
func (m *MockClassifier) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Classify returns the canned results, honoring context cancellation and the
// optional Block gate.
func (m *MockClassifier) Classify(ctx context.Context, _ image.Image) ([]model.ClassificationResult, error) {
	m.mu.Lock()
	m.calls++
	block := m.Block
	results := m.results
	err := m.err
	m.mu.Unlock()

	if block != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-block:
		}
	}

	if err != nil {
		return nil, err
	}

	out := make([]model.ClassificationResult, len(results))
	copy(out, results)
	return out, nil
}

// Calls reports how many times Classify was invoked.
func (m *MockClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close implements the Classifier interface.
func (m *MockClassifier) Close() error {
	return nil
}
