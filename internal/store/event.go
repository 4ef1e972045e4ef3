package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequenceCounter hands out the global monotonic sequence shared by every
// event table, so LLM calls and curriculum events can be ordered against
// each other. Numbers are drawn inside the transaction that inserts the
// event, so a failed insert never burns a sequence value.
type sequenceCounter struct{}

// newSequenceCounter ensures the single-row tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{}, nil
}

// next claims the next sequence number within tx.
func (sequenceCounter) next(ctx context.Context, tx *sql.Tx) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// appendEvent runs insert with a freshly claimed sequence number in a single
// transaction.
func (s *sequenceCounter) appendEvent(ctx context.Context, db *sql.DB, insert func(tx *sql.Tx, seq int64) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	seq, err := s.next(ctx, tx)
	if err != nil {
		return err
	}
	if err := insert(tx, seq); err != nil {
		return err
	}
	return tx.Commit()
}
