package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/greenproof/internal/model"
)

// RecordEntry appends one accepted ledger entry to the history.
func (s *SQLiteStorage) RecordEntry(ctx context.Context, entry model.LedgerEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntry(&entry); err != nil {
		return err
	}

	classifications, err := json.Marshal(entry.Verdict.Classifications)
	if err != nil {
		return fmt.Errorf("failed to marshal classifications: %w", err)
	}

	query := `
		INSERT INTO ledger_entries (id, category, timestamp, credits_awarded, matched_labels, classifications, rationale)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		entry.ID.String(),
		string(entry.Category),
		entry.Timestamp,
		entry.CreditsAwarded,
		strings.Join(entry.Verdict.MatchedLabels, ","),
		string(classifications),
		entry.Verdict.Rationale,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	slog.Debug("recorded ledger entry",
		"entry_id", entry.ID,
		"category", entry.Category,
		"credits", entry.CreditsAwarded)
	return nil
}

// ListEntries returns all recorded entries, oldest first.
func (s *SQLiteStorage) ListEntries(ctx context.Context) ([]model.LedgerEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category, timestamp, credits_awarded, matched_labels, classifications, rationale
		FROM ledger_entries
		ORDER BY timestamp, created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []model.LedgerEntry
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	slog.Debug("retrieved ledger entries", "count", len(entries))
	return entries, nil
}

// TotalCredits returns the sum of credits over all recorded entries.
func (s *SQLiteStorage) TotalCredits(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var total int
	query := `SELECT COALESCE(SUM(credits_awarded), 0) FROM ledger_entries`
	if err := s.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum credits: %w", err)
	}
	return total, nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanEntry.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.LedgerEntry, error) {
	var (
		entry           model.LedgerEntry
		id              string
		category        string
		timestamp       time.Time
		matchedLabels   string
		classifications string
		rationale       string
	)

	if err := row.Scan(&id, &category, &timestamp, &entry.CreditsAwarded, &matchedLabels, &classifications, &rationale); err != nil {
		return model.LedgerEntry{}, fmt.Errorf("failed to scan ledger entry: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("failed to parse entry id %q: %w", id, err)
	}
	entry.ID = parsedID
	entry.Category = model.ActionCategory(category)
	entry.Timestamp = timestamp

	var results []model.ClassificationResult
	if classifications != "" {
		if err := json.Unmarshal([]byte(classifications), &results); err != nil {
			return model.LedgerEntry{}, fmt.Errorf("failed to unmarshal classifications: %w", err)
		}
	}

	var labels []string
	if matchedLabels != "" {
		labels = strings.Split(matchedLabels, ",")
	}

	// Stored entries are always accepted verdicts.
	entry.Verdict = model.VerificationVerdict{
		Category:        entry.Category,
		Accepted:        true,
		MatchedLabels:   labels,
		Classifications: results,
		Rationale:       rationale,
	}

	return entry, nil
}
