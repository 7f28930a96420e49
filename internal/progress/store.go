package progress

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abhisek/golearn/internal/store"
)

// Default keys, matching what browser builds of the quiz write.
const (
	DefaultSnapshotKey = "goLearningProgress"
	DefaultTabKey      = "currentTab"
)

// Options configures a Store.
type Options struct {
	SnapshotKey string
	TabKey      string
	Limits      Limits
	Logger      *slog.Logger
}

// Store loads and saves State through a KV backend. Backend failures are
// logged and never returned: a broken backend degrades to an unsaved
// session, not a failed one.
type Store struct {
	kv     store.KV
	opts   Options
	logger *slog.Logger
}

// NewStore creates a Store over kv. Empty keys fall back to the defaults.
func NewStore(kv store.KV, opts Options) *Store {
	if opts.SnapshotKey == "" {
		opts.SnapshotKey = DefaultSnapshotKey
	}
	if opts.TabKey == "" {
		opts.TabKey = DefaultTabKey
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:     kv,
		opts:   opts,
		logger: logger.With("component", "progress"),
	}
}

// Load returns the persisted state, or defaults when nothing usable is stored.
func (s *Store) Load(ctx context.Context) State {
	raw, err := s.kv.Get(ctx, s.opts.SnapshotKey)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("no snapshot stored, using defaults", "key", s.opts.SnapshotKey)
		return Default()
	}
	if err != nil {
		s.logger.Warn("read snapshot failed, using defaults", "key", s.opts.SnapshotKey, "error", err)
		return Default()
	}

	st, err := Unmarshal([]byte(raw), s.opts.Limits)
	if err != nil {
		s.logger.Warn("malformed snapshot, using defaults", "key", s.opts.SnapshotKey, "error", err)
		return Default()
	}
	return st
}

// Save writes the full state. A write failure is logged and swallowed.
func (s *Store) Save(ctx context.Context, st State) {
	data, err := Marshal(st)
	if err != nil {
		s.logger.Warn("encode snapshot failed", "error", err)
		return
	}
	if err := s.kv.Set(ctx, s.opts.SnapshotKey, string(data)); err != nil {
		s.logger.Warn("write snapshot failed", "key", s.opts.SnapshotKey, "error", err)
	}
}

// Reset persists and returns the default state.
func (s *Store) Reset(ctx context.Context) State {
	st := Default()
	s.Save(ctx, st)
	return st
}

// LoadTab returns the last active tab id, if one was stored.
func (s *Store) LoadTab(ctx context.Context) (string, bool) {
	tab, err := s.kv.Get(ctx, s.opts.TabKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("read tab failed", "key", s.opts.TabKey, "error", err)
		}
		return "", false
	}
	return tab, tab != ""
}

// SaveTab records the active tab id. A write failure is logged and swallowed.
func (s *Store) SaveTab(ctx context.Context, tab string) {
	if err := s.kv.Set(ctx, s.opts.TabKey, tab); err != nil {
		s.logger.Warn("write tab failed", "key", s.opts.TabKey, "error", err)
	}
}
