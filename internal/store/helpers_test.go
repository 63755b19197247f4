package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// openTestStore opens a SQLite store in a fresh temp directory and closes it
// when the test ends.
func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	cfg := types.Config{
		Driver: types.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "database", types.DefaultDatabaseFile),
	}
	s, err := Open(context.Background(), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// openSeededStore opens a test store loaded with the fixed seed data.
func openSeededStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	s := openTestStore(t, opts...)
	require.NoError(t, s.ResetAndSeed(context.Background()))
	return s
}

func date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := types.ParseOrderDate(s)
	require.NoError(t, err)
	return d
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()

	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	require.NoError(t, err)
	return n
}
