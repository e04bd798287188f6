// Package engine implements the action verification pipeline: classify a
// submitted photo, judge the labels against the claimed category, and apply
// the verdict to the credit ledger.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/verdantlabs/greenproof/internal/common"
	"github.com/verdantlabs/greenproof/internal/judge"
	"github.com/verdantlabs/greenproof/internal/ledger"
	"github.com/verdantlabs/greenproof/internal/model"
	"github.com/verdantlabs/greenproof/internal/service"
)

// VerificationEngine orchestrates one verification attempt end to end.
// Inference runs on a background goroutine; the judge and ledger are cheap
// synchronous computations that run on the caller's goroutine once the
// classifier completes.
type VerificationEngine struct {
	classifier Classifier
	judge      *judge.Judge
	ledger     *ledger.Ledger
	store      service.Storage
}

// VerificationResult is what one verification attempt resolves to: exactly
// one verdict with its rationale, the resulting balance, and the ledger
// entry when the verdict was accepted (nil otherwise).
type VerificationResult struct {
	Verdict model.VerificationVerdict
	Balance int
	Entry   *model.LedgerEntry
}

// New creates a verification engine with the given dependencies.
func New(classifier Classifier, j *judge.Judge, l *ledger.Ledger) *VerificationEngine {
	return &VerificationEngine{
		classifier: classifier,
		judge:      j,
		ledger:     l,
	}
}

// NewWithStorage creates a verification engine that additionally persists
// accepted entries to local storage. Persistence is best-effort: a storage
// failure is logged and never blocks the user-facing verdict.
func NewWithStorage(classifier Classifier, j *judge.Judge, l *ledger.Ledger, store service.Storage) *VerificationEngine {
	e := New(classifier, j, l)
	e.store = store
	return e
}

// classifyOutcome carries the classifier's result across the goroutine
// boundary.
type classifyOutcome struct {
	results []model.ClassificationResult
	err     error
}

// Verify runs one verification attempt for (img, category). If ctx is
// canceled before inference completes, Verify returns ctx.Err() and the
// ledger is never touched — a late classifier result is discarded. A
// transient inference failure degrades to an empty classification sequence,
// so the attempt still resolves to a (rejected) verdict rather than a
// technical error.
func (e *VerificationEngine) Verify(ctx context.Context, img image.Image, category model.ActionCategory) (*VerificationResult, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCategory, category)
	}

	done := make(chan classifyOutcome, 1)
	go func() {
		results, err := e.classifier.Classify(ctx, img)
		done <- classifyOutcome{results: results, err: err}
	}()

	var outcome classifyOutcome
	select {
	case <-ctx.Done():
		slog.Debug("verification abandoned before inference completed", "category", category)
		return nil, ctx.Err()
	case outcome = <-done:
	}

	results := outcome.results
	if outcome.err != nil {
		if errors.Is(outcome.err, context.Canceled) || errors.Is(outcome.err, context.DeadlineExceeded) {
			return nil, outcome.err
		}
		// Recoverable: judge an empty sequence so the user still gets a
		// verdict and rationale instead of a raw error.
		slog.Warn("inference failed, degrading to empty classification",
			"category", category,
			"error", outcome.err)
		results = nil
	}

	verdict := e.judge.Verify(results, category)

	// Re-check cancellation before mutating the ledger: an abandoned
	// verification must not award credits.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	balance, entry := e.ledger.Apply(verdict, category)

	if entry != nil {
		slog.Info("action verified",
			"category", category,
			"credits", entry.CreditsAwarded,
			"balance", balance,
			"matched", verdict.MatchedLabels)
		e.persist(ctx, *entry)
	} else {
		slog.Info("action rejected",
			"category", category,
			"classification_count", len(verdict.Classifications))
	}

	return &VerificationResult{
		Verdict: verdict,
		Balance: balance,
		Entry:   entry,
	}, nil
}

// Balance returns the ledger's current credit balance.
func (e *VerificationEngine) Balance() int {
	return e.ledger.Balance()
}

// History returns the ledger's accepted entries, oldest first.
func (e *VerificationEngine) History() []model.LedgerEntry {
	return e.ledger.Entries()
}

func (e *VerificationEngine) persist(ctx context.Context, entry model.LedgerEntry) {
	if e.store == nil {
		return
	}
	if err := e.store.RecordEntry(ctx, entry); err != nil {
		common.LogError(err, "failed to persist ledger entry", common.Fields{
			"entry_id": entry.ID,
			"category": entry.Category,
		})
	}
}
