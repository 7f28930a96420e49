package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a string key-value backend. Implementations must be safe for use
// by a single session; cross-process writes are last-write-wins.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when non-empty
}

// AnswerEventData captures a single evaluated answer.
type AnswerEventData struct {
	SessionID      string
	ExerciseIndex  int
	ChosenIndex    int
	Correct        bool
	NewlyCompleted bool
}

// AnswerEventRecord is a persisted answer event.
type AnswerEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// ExerciseStats aggregates answer events for one exercise.
type ExerciseStats struct {
	ExerciseIndex int
	Attempts      int
	Correct       int
}

// Accuracy returns Correct / Attempts, or 0 when there are no attempts.
func (s ExerciseStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// EventRepo provides append and query access to answer history.
type EventRepo interface {
	// AppendAnswerEvent records an evaluated answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryAnswerEvents returns answer events, newest first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// AnswerStats returns per-exercise attempt counts ordered by exercise index.
	AnswerStats(ctx context.Context) ([]ExerciseStats, error)
}
