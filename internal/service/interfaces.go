// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/verdantlabs/greenproof/internal/model"
)

// Storage defines the contract for the local ledger history persistence
// layer. Only accepted verdicts produce entries; the store never sees
// rejections.
type Storage interface {
	// RecordEntry appends one accepted ledger entry to the history.
	RecordEntry(ctx context.Context, entry model.LedgerEntry) error
	// ListEntries returns all recorded entries, oldest first.
	ListEntries(ctx context.Context) ([]model.LedgerEntry, error)
	// TotalCredits returns the sum of credits over all recorded entries.
	TotalCredits(ctx context.Context) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
