package types

import "errors"

// Config holds engine selection and location for store.Open.
type Config struct {
	Driver string `json:"driver" yaml:"driver"`
	// Path is the SQLite database file. Ignored by postgres.
	Path string `json:"path" yaml:"path"`
	// DSN is the postgres connection string. Ignored by sqlite.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultDatabaseFile is the SQLite file name inside the data directory.
const DefaultDatabaseFile = "database.db"

// Config validation errors.
var (
	ErrDriverEmpty   = errors.New("driver must not be empty")
	ErrDriverUnknown = errors.New("unknown driver")
	ErrPathEmpty     = errors.New("sqlite path must not be empty")
	ErrDSNEmpty      = errors.New("postgres dsn must not be empty")
)

// knownDrivers lists the drivers that Validate accepts.
var knownDrivers = map[string]bool{
	DriverSQLite:   true,
	DriverPostgres: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Driver == "" {
		return ErrDriverEmpty
	}
	if !knownDrivers[c.Driver] {
		return ErrDriverUnknown
	}
	switch c.Driver {
	case DriverSQLite:
		if c.Path == "" {
			return ErrPathEmpty
		}
	case DriverPostgres:
		if c.DSN == "" {
			return ErrDSNEmpty
		}
	}
	return nil
}
