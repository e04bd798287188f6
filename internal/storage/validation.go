package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verdantlabs/greenproof/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidEntry = errors.New("invalid ledger entry")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEntry ensures a ledger entry is well-formed before persisting.
// Only accepted verdicts reach the store, and credits are always positive.
func validateEntry(entry *model.LedgerEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}
	if !entry.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEntry, entry.Category)
	}
	if entry.CreditsAwarded <= 0 {
		return fmt.Errorf("%w: non-positive credits %d", ErrInvalidEntry, entry.CreditsAwarded)
	}
	if !entry.Verdict.Accepted {
		return fmt.Errorf("%w: rejected verdicts are not recorded", ErrInvalidEntry)
	}
	if entry.Timestamp.IsZero() {
		return fmt.Errorf("%w: zero timestamp", ErrInvalidEntry)
	}
	return nil
}
