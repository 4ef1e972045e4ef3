package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// eventRepo implements EventRepo on database/sql and the global sequence
// counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.seq.appendEvent(ctx, r.db, func(tx *sql.Tx, seq int64) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO llm_request_events
			(sequence, created_at, provider, model, purpose, subject, session_id,
			 input_tokens, output_tokens, latency_ms, success, error_message,
			 request_body, response_body)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			seq, time.Now().UnixMilli(), data.Provider, data.Model, data.Purpose,
			data.Subject, data.SessionID,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

const llmEventColumns = `id, sequence, created_at, provider, model, purpose, subject, session_id,
	input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body`

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	where, args := filterClause(opts)
	if opts.Purpose != "" {
		where = appendCond(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.Subject != "" {
		where = appendCond(where, "subject = ?")
		args = append(args, opts.Subject)
	}

	query := `SELECT ` + llmEventColumns + ` FROM llm_request_events` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+llmEventColumns+` FROM llm_request_events WHERE id = ?`, id)
	rec, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT purpose, COUNT(*),
			COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
			CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_request_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var st LLMUsageStats
		if err := rows.Scan(&st.Purpose, &st.Calls, &st.InputTokens, &st.OutputTokens, &st.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT model, COUNT(*),
			COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []LLMModelUsage
	for rows.Next() {
		var mu LLMModelUsage
		if err := rows.Scan(&mu.Model, &mu.Calls, &mu.InputTokens, &mu.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, mu)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageBySubject(ctx context.Context) ([]LLMSubjectUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT subject, purpose, model, COUNT(*),
			COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events GROUP BY subject, purpose, model
		ORDER BY subject, purpose, model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by subject: %w", err)
	}
	defer rows.Close()

	var out []LLMSubjectUsage
	for rows.Next() {
		var su LLMSubjectUsage
		if err := rows.Scan(&su.Subject, &su.Purpose, &su.Model, &su.Calls, &su.InputTokens, &su.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan subject usage: %w", err)
		}
		out = append(out, su)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMRequestEventRecord, error) {
	var (
		rec       LLMRequestEventRecord
		createdAt int64
	)
	err := row.Scan(&rec.ID, &rec.Sequence, &createdAt, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.Subject, &rec.SessionID, &rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.Timestamp = time.UnixMilli(createdAt).UTC()
	return &rec, nil
}

// filterClause builds the WHERE clause shared by every event table.
func filterClause(opts QueryOpts) (string, []any) {
	var (
		where string
		args  []any
	)
	if opts.After > 0 {
		where = appendCond(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = appendCond(where, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = appendCond(where, "created_at >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = appendCond(where, "created_at <= ?")
		args = append(args, opts.To.UnixMilli())
	}
	return where, args
}

func appendCond(where, cond string) string {
	if where == "" {
		return " WHERE " + cond
	}
	return where + " AND " + cond
}

