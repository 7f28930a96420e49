package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
)

// sequenceCounter hands out the global monotonic sequence number stamped on
// every event. The mutex serializes within the process; the RETURNING clause
// makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo over raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO answer_events
			(sequence, timestamp, session_id, exercise_index, chosen_index, correct, newly_completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		time.Now().UTC().UnixMilli(),
		data.SessionID,
		data.ExerciseIndex,
		data.ChosenIndex,
		boolToInt(data.Correct),
		boolToInt(data.NewlyCompleted),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = append(where, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UTC().UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UTC().UnixMilli())
	}
	if opts.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.SessionID)
	}

	query := `SELECT id, sequence, timestamp, session_id, exercise_index, chosen_index, correct, newly_completed
		FROM answer_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerEventRecord
	for rows.Next() {
		var (
			rec                     AnswerEventRecord
			ts                      int64
			correct, newlyCompleted int
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.SessionID,
			&rec.ExerciseIndex, &rec.ChosenIndex, &correct, &newlyCompleted,
		); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		rec.Correct = correct != 0
		rec.NewlyCompleted = newlyCompleted != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) AnswerStats(ctx context.Context) ([]ExerciseStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT exercise_index, COUNT(*), COALESCE(SUM(correct), 0)
		FROM answer_events
		GROUP BY exercise_index
		ORDER BY exercise_index`)
	if err != nil {
		return nil, fmt.Errorf("query answer stats: %w", err)
	}
	defer rows.Close()

	var stats []ExerciseStats
	for rows.Next() {
		var st ExerciseStats
		if err := rows.Scan(&st.ExerciseIndex, &st.Attempts, &st.Correct); err != nil {
			return nil, fmt.Errorf("scan answer stats: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer stats: %w", err)
	}
	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
