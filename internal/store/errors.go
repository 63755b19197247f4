package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// knownKinds are errors that already carry their kind and pass through
// classify untouched.
var knownKinds = []error{
	types.ErrStorage,
	types.ErrConstraint,
	types.ErrNoData,
	types.ErrInvalidFactor,
	types.ErrStoreClosed,
}

// classify maps an engine error onto ErrConstraint or ErrStorage.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range knownKinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: %w", types.ErrConstraint, err)
	}
	return fmt.Errorf("%w: %w", types.ErrStorage, err)
}

// isConstraintViolation reports whether err is a SQLite SQLITE_CONSTRAINT
// (any extended code) or a postgres integrity violation (SQLSTATE class 23).
func isConstraintViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return strings.HasPrefix(pe.Code, "23")
	}
	return false
}
