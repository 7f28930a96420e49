package store

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// LoggingKV is a decorator that logs every backend call with its latency.
type LoggingKV struct {
	inner   KV
	logger  *slog.Logger
	backend string
}

// WithLogging wraps kv with debug-level call logging. Failures are logged
// at debug too; callers that swallow an error report it themselves.
func WithLogging(kv KV, backend string, logger *slog.Logger) *LoggingKV {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingKV{
		inner:   kv,
		logger:  logger.With("component", "kv", "backend", backend),
		backend: backend,
	}
}

func (l *LoggingKV) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	v, err := l.inner.Get(ctx, key)
	l.record(ctx, "get", key, len(v), start, err)
	return v, err
}

func (l *LoggingKV) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := l.inner.Set(ctx, key, value)
	l.record(ctx, "set", key, len(value), start, err)
	return err
}

// Backend returns the backend name given to WithLogging.
func (l *LoggingKV) Backend() string {
	return l.backend
}

func (l *LoggingKV) record(ctx context.Context, op, key string, size int, start time.Time, err error) {
	attrs := []any{
		"op", op,
		"key", key,
		"bytes", size,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		l.logger.DebugContext(ctx, "kv call failed", append(attrs, "error", err)...)
		return
	}
	l.logger.DebugContext(ctx, "kv call", append(attrs, "found", !errors.Is(err, ErrNotFound))...)
}
