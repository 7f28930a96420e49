package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/golearn/internal/config"
)

// Backend is an opened KV backend plus the optional answer history, which
// only the SQLite backend provides.
type Backend struct {
	Name   string
	KV     KV
	Events EventRepo // nil unless Name is sqlite
	DBPath string    // sqlite file in use

	closeFn func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}

// OpenBackend opens the backend selected by cfg. Every KV call is logged
// through logger at debug level.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	b := &Backend{Name: cfg.Backend}

	switch cfg.Backend {
	case config.BackendSQLite:
		path := cfg.DBPath
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve database path: %w", err)
			}
			path = p
		} else if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		s, err := Open(path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		b.KV, b.Events, b.DBPath, b.closeFn = s.KV(), s.EventRepo(), path, s.Close

	case config.BackendRedis:
		r, err := NewRedisKV(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis backend: %w", err)
		}
		b.KV, b.closeFn = r, r.Close

	case config.BackendPostgres:
		p, err := NewPostgresKV(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres backend: %w", err)
		}
		b.KV, b.closeFn = p, p.Close

	case config.BackendMemory:
		b.KV = NewMemoryKV()

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	b.KV = WithLogging(b.KV, b.Name, logger)
	return b, nil
}
