// Package sqlite provides the SQLite backend over mattn/go-sqlite3.
//
// The database path follows the driver's conventions; ":memory:" opens an
// in-memory database. Foreign key enforcement is switched on, and instead of
// failing with "database is locked" under contention the driver waits and
// retries, serializing concurrent writers at the cost of latency.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"dbfacade"
	"dbfacade/core"
	"dbfacade/dialect"
	"dbfacade/drivers/base"
	"dbfacade/query"
)

// busyTimeoutMillis makes the engine retry a locked database for long enough
// that contention behaves like serialization rather than an error.
const busyTimeoutMillis = 2147483647

// Connection is a dbfacade.Connection over one SQLite database handle.
type Connection struct {
	base.Conn
}

// Option configures a Connection.
type Option func(*Connection)

// WithLogger attaches a logger.
func WithLogger(log dbfacade.Logger) Option {
	return func(c *Connection) { c.Log = log }
}

// Open opens (creating when absent) the database at the given path.
func Open(path string, opts ...Option) (*Connection, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := fmt.Sprintf("%s%s_foreign_keys=1&_busy_timeout=%d", path, sep, busyTimeoutMillis)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, core.NewDriverError(err, "")
	}
	// One physical connection: the handle is not re-entrant and transaction
	// state must survive across statements.
	db.SetMaxOpenConns(1)
	conn := &Connection{Conn: base.Conn{DB: db, Dialect: dialect.NewSQLite(), Log: dbfacade.NopLogger()}}
	for _, opt := range opts {
		opt(conn)
	}
	return conn, nil
}

// VerifyScheme fetches the live table layout with PRAGMA table_info and
// compares it column by column against the declared scheme: name, declared
// type, default value, nullability, and primary-key membership.
func (c *Connection) VerifyScheme(scheme *core.TableScheme) error {
	expected := make(map[string]core.Cell)
	for _, cell := range scheme.Cells() {
		expected[cell.Name()] = cell
	}

	// PRAGMA table_info('t') rows: cid|name|type|notnull|dflt_value|pk
	processRow := func(header map[string]int, row []*string) error {
		name := base.FixNull(row[header["name"]])
		typ := base.FixNull(row[header["type"]])
		defval := normalizeDefault(base.FixNull(row[header["dflt_value"]]))
		notNull := base.FixNull(row[header["notnull"]]) == "1"
		isPK := base.FixNull(row[header["pk"]]) == "1"

		cell, ok := expected[name]
		if !ok {
			return core.NewSchemeMismatchError(name, "column",
				"Column '%s' does not exist in the scheme", name)
		}
		expectedType := c.Dialect.TypeName(cell.Hint())
		if typ != expectedType {
			return core.NewSchemeMismatchError(name, "type",
				"Type %s of column '%s' does not match type %s in scheme", typ, name, expectedType)
		}
		if defval != cell.Config().String() {
			return core.NewSchemeMismatchError(name, "default",
				"Default value '%s' of column '%s' does not match expected value %s",
				defval, name, cell.Config().String())
		}
		if !notNull != cell.IsNullable() {
			return core.NewSchemeMismatchError(name, "nullable",
				"The value of the nullable flag for column '%s' has value (%t) and does not match expected (%t)",
				name, !notNull, cell.IsNullable())
		}
		if isPK != cell.HasFlag(core.PrimaryKey) {
			return core.NewSchemeMismatchError(name, "primary key",
				"Primary key flag of column '%s' does not match the scheme", name)
		}
		delete(expected, name)
		return nil
	}

	pragma := query.NewStatement("PRAGMA table_info('" + scheme.Name() + "');")
	if err := c.PerformStatements([]query.Statement{pragma}, processRow); err != nil {
		return err
	}
	for name := range expected {
		return core.NewSchemeMismatchError(name, "column",
			"Column '%s' from scheme does not exist in the table", name)
	}
	return nil
}

// normalizeDefault strips the quoting SQLite preserves from the CREATE
// statement, so a column created with DEFAULT '50' compares as 50.
func normalizeDefault(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") {
		return v[1 : len(v)-1]
	}
	return v
}
