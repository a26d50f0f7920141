package store

import (
	"context"
	"fmt"
)

const (
	sessionEventStart = "start"
	sessionEventEnd   = "end"
)

func (r *eventRepo) AppendSessionStart(ctx context.Context, data SessionEventData) error {
	return r.appendSessionEvent(ctx, sessionEventStart, data)
}

func (r *eventRepo) AppendSessionEnd(ctx context.Context, data SessionEventData) error {
	return r.appendSessionEvent(ctx, sessionEventEnd, data)
}

func (r *eventRepo) appendSessionEvent(ctx context.Context, kind string, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, session_id, kind, problem, final_state)
		VALUES (?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, kind, data.Problem, data.FinalState,
	)
	if err != nil {
		return fmt.Errorf("save session %s event: %w", kind, err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	q := `SELECT id, sequence, timestamp, session_id, kind, problem, final_state
		FROM session_events WHERE kind = ? ORDER BY sequence DESC`
	args := []any{sessionEventEnd}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID,
			&rec.Kind, &rec.Problem, &rec.FinalState,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) AppendStepOutcome(ctx context.Context, data StepOutcomeData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO step_outcomes
		(sequence, session_id, step_index, attempts, solved, skipped,
		 final_answer, understanding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.StepIndex, data.Attempts, data.Solved,
		data.Skipped, data.FinalAnswer, data.Understanding,
	)
	if err != nil {
		return fmt.Errorf("save step outcome: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionOutcomes(ctx context.Context, sessionID string) ([]StepOutcomeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, sequence, timestamp, session_id, step_index, attempts,
		solved, skipped, final_answer, understanding
		FROM step_outcomes WHERE session_id = ? ORDER BY step_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session outcomes: %w", err)
	}
	defer rows.Close()

	var records []StepOutcomeRecord
	for rows.Next() {
		var rec StepOutcomeRecord
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID,
			&rec.StepIndex, &rec.Attempts, &rec.Solved, &rec.Skipped,
			&rec.FinalAnswer, &rec.Understanding,
		)
		if err != nil {
			return nil, fmt.Errorf("scan step outcome: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
