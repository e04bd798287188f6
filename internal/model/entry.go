package model

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntry records one accepted action in the credit ledger. Entries are
// append-only; rejected verdicts never produce an entry.
type LedgerEntry struct {
	ID             uuid.UUID
	Category       ActionCategory
	Timestamp      time.Time
	CreditsAwarded int
	Verdict        VerificationVerdict
}
