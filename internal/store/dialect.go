package store

import (
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// dialect captures what differs between engines: the database/sql driver
// name, how a config becomes a DSN, the DDL and the placeholder syntax.
type dialect struct {
	name       string
	driverName string
	ddl        []string
	dsn        func(types.Config) string
	numbered   bool // placeholders are $1, $2, ... instead of ?

	// afterRestore runs after rows are inserted with explicit IDs.
	afterRestore []string
}

var dialects = map[string]dialect{
	types.DriverSQLite: {
		name:       types.DriverSQLite,
		driverName: "sqlite",
		ddl:        sqliteSchemaDDL,
		dsn:        sqliteDSN,
	},
	types.DriverPostgres: {
		name:       types.DriverPostgres,
		driverName: "pgx",
		ddl:        postgresSchemaDDL,
		dsn:        func(c types.Config) string { return c.DSN },
		numbered:   true,
		afterRestore: []string{
			"SELECT setval(pg_get_serial_sequence('orders', 'order_id'), COALESCE((SELECT MAX(order_id) FROM orders), 0) + 1, false)",
		},
	},
}

// sqliteDSN turns on foreign key enforcement for every pooled connection and
// waits on a locked database instead of failing at once.
func sqliteDSN(c types.Config) string {
	return "file:" + c.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// rebind rewrites ? placeholders for engines that number their parameters.
// Queries in this package never contain a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
