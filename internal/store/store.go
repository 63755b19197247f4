// Package store implements the storeroom schema, seed loader, report library
// and mutation library over database/sql. The default engine is SQLite
// (modernc.org/sqlite); postgres is available through pgx.
//
// Every exported operation runs in its own transaction: it begins, does its
// work, commits or rolls back, and returns. No transaction outlives a call.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mesh-intelligence/storeroom/internal/metrics"
	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// Store owns the database handle. It assumes a single caller at a time.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	dialect dialect
	config  types.Config
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// Option configures a Store at Open.
type Option func(*Store)

// WithMetrics records every operation on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Store) { s.metrics = r }
}

// WithLogger replaces slog.Default() as the operation logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open validates cfg, opens the database and ensures the schema exists.
// For SQLite the parent directory of cfg.Path is created first. All failures
// wrap types.ErrStorage except config validation errors.
func Open(ctx context.Context, cfg types.Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := dialects[cfg.Driver]

	if cfg.Driver == types.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data dir: %w", types.ErrStorage, err)
		}
	}

	db, err := sql.Open(d.driverName, d.dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", types.ErrStorage, d.name, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", types.ErrStorage, d.name, err)
	}

	s := &Store{
		db:      db,
		dialect: d,
		config:  cfg,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	s.logger.Debug("store opened", "driver", d.name, "path", cfg.Path)
	return s, nil
}

// EnsureSchema creates the three tables if absent. Safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.withTx(ctx, "ensure_schema", func(tx txn) error {
		for _, ddl := range s.dialect.ddl {
			if _, err := tx.exec(ctx, ddl); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
		}
		return nil
	})
}

// Close releases the database handle. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("%w: close: %w", types.ErrStorage, err)
	}
	return nil
}

// Config returns the configuration the store was opened with.
func (s *Store) Config() types.Config {
	return s.config
}

// txn wraps a transaction with the store's placeholder dialect.
type txn struct {
	tx *sql.Tx
	d  dialect
}

func (t txn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.d.rebind(query), args...)
}

func (t txn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.d.rebind(query), args...)
}

func (t txn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.d.rebind(query), args...)
}

// withTx runs fn in a fresh transaction named op. The transaction commits
// when fn returns nil and rolls back otherwise. The returned error is
// classified into one of the types error kinds.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx txn) error) (retErr error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		s.metrics.Observe(op, elapsed, retErr)
		if retErr != nil {
			s.logger.Debug("store operation failed", "op", op, "duration", elapsed, "error", retErr)
			return
		}
		s.logger.Debug("store operation", "op", op, "duration", elapsed)
	}()

	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return types.ErrStoreClosed
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("%s: begin: %w", op, err))
	}
	// Roll back on every path that does not commit, panics included, so the
	// single connection goes back to the pool.
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(txn{tx: tx, d: s.dialect}); err != nil {
		return classify(fmt.Errorf("%s: %w", op, err))
	}
	committed = true
	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("%s: commit: %w", op, err))
	}
	return nil
}

// scanOrderDate accepts the shapes drivers return for a DATE column: text
// from SQLite and time.Time from postgres (or SQLite when it parses dates).
func scanOrderDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	case string:
		return types.ParseOrderDate(d)
	case []byte:
		return types.ParseOrderDate(string(d))
	case nil:
		return time.Time{}, errors.New("order date is null")
	default:
		return time.Time{}, fmt.Errorf("unexpected order date type %T", v)
	}
}
