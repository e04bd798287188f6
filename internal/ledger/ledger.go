// Package ledger tracks a user's accumulated credits for the current session.
// The balance is owned exclusively by the Ledger: it changes only when an
// accepted verdict is applied, and it never decreases.
package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/greenproof/internal/model"
	"github.com/verdantlabs/greenproof/internal/taxonomy"
)

// Ledger is the append-only record of accepted actions plus the derived
// running balance. Apply is serialized so concurrently completing
// verifications cannot lose updates.
type Ledger struct {
	taxonomy *taxonomy.Taxonomy
	mu       sync.Mutex
	balance  int
	entries  []model.LedgerEntry
}

// New creates an empty session ledger.
func New(tax *taxonomy.Taxonomy) *Ledger {
	return &Ledger{taxonomy: tax}
}

// NewWithHistory creates a ledger seeded from previously recorded entries,
// typically loaded from local storage at startup. The balance is derived
// from the entries, preserving the sum invariant.
func NewWithHistory(tax *taxonomy.Taxonomy, history []model.LedgerEntry) *Ledger {
	l := New(tax)
	for _, entry := range history {
		l.entries = append(l.entries, entry)
		l.balance += entry.CreditsAwarded
	}
	return l
}

// Apply performs the single state transition of the ledger. An accepted
// verdict appends an entry worth the category's credit value and returns the
// new balance with the entry; a rejected verdict changes nothing and returns
// a nil entry. Apply never fails.
func (l *Ledger) Apply(verdict model.VerificationVerdict, category model.ActionCategory) (int, *model.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !verdict.Accepted {
		return l.balance, nil
	}

	entry := model.LedgerEntry{
		ID:             uuid.New(),
		Category:       category,
		Timestamp:      time.Now().UTC(),
		CreditsAwarded: l.taxonomy.Credits(category),
		Verdict:        verdict,
	}

	l.entries = append(l.entries, entry)
	l.balance += entry.CreditsAwarded

	return l.balance, &entry
}

// Balance returns the current credit balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Entries returns a copy of the ledger history, oldest first.
func (l *Ledger) Entries() []model.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
