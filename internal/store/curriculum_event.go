package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

func (r *eventRepo) AppendCurriculumEvent(ctx context.Context, data CurriculumEventData) error {
	topics := data.Topics
	if topics == nil {
		topics = []string{}
	}
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}

	err = r.seq.appendEvent(ctx, r.db, func(tx *sql.Tx, seq int64) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO curriculum_events
			(sequence, created_at, session_id, subject, action, topics, detail)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			seq, time.Now().UnixMilli(), data.SessionID, data.Subject, data.Action,
			string(topicsJSON), data.Detail,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("save curriculum event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryCurriculumEvents(ctx context.Context, opts QueryOpts) ([]CurriculumEventRecord, error) {
	where, args := filterClause(opts)
	if opts.Session != "" {
		where = appendCond(where, "session_id = ?")
		args = append(args, opts.Session)
	}

	query := `SELECT id, sequence, created_at, session_id, subject, action, topics, detail
		FROM curriculum_events` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query curriculum events: %w", err)
	}
	defer rows.Close()

	var out []CurriculumEventRecord
	for rows.Next() {
		var (
			rec        CurriculumEventRecord
			createdAt  int64
			topicsJSON string
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &createdAt, &rec.SessionID, &rec.Subject,
			&rec.Action, &topicsJSON, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scan curriculum event: %w", err)
		}
		if err := json.Unmarshal([]byte(topicsJSON), &rec.Topics); err != nil {
			return nil, fmt.Errorf("decode topics of event %d: %w", rec.ID, err)
		}
		rec.Timestamp = time.UnixMilli(createdAt).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
