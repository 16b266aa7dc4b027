// Package mysql provides the MySQL backend over go-sql-driver/mysql.
package mysql

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"dbfacade"
	"dbfacade/core"
	"dbfacade/dialect"
	"dbfacade/drivers/base"
	"dbfacade/query"
)

// Connection is a dbfacade.Connection over one MySQL session.
type Connection struct {
	base.Conn
}

// Option configures a Connection.
type Option func(*Connection)

// WithLogger attaches a logger.
func WithLogger(log dbfacade.Logger) Option {
	return func(c *Connection) { c.Log = log }
}

// Open connects to the given server and database.
func Open(host string, port int, user, password, database string, opts ...Option) (*Connection, error) {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.User = user
	cfg.Passwd = password
	cfg.DBName = database
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, core.NewDriverError(err, "")
	}
	return OpenDB(db, opts...), nil
}

// OpenDB wraps an already opened database/sql handle, which is how tests
// plug in a mocked driver.
func OpenDB(db *sql.DB, opts ...Option) *Connection {
	// One physical session: transaction statements issued as plain queries
	// must stay on the connection that began them. START TRANSACTION runs
	// through the text protocol because the server rejects it as a prepared
	// statement.
	db.SetMaxOpenConns(1)
	conn := &Connection{Conn: base.Conn{DB: db, Dialect: dialect.NewMySQL(), Log: dbfacade.NopLogger()}}
	for _, opt := range opts {
		opt(conn)
	}
	return conn
}

// VerifyScheme fetches the live table layout with DESCRIBE and compares it
// against the declared scheme. Types compare case-insensitively with the
// dialect's INTEGER reported as "int".
//
// Known limitation: among the flags only PRIMARY_KEY membership is checked;
// DESCRIBE does not expose enough to prove full flag equivalence.
func (c *Connection) VerifyScheme(scheme *core.TableScheme) error {
	expected := make(map[string]core.Cell)
	for _, cell := range scheme.Cells() {
		expected[cell.Name()] = cell
	}

	// DESCRIBE rows: Field | Type | Null | Key | Default | Extra
	processRow := func(header map[string]int, row []*string) error {
		name := base.FixNull(row[header["Field"]])
		typ := base.FixNull(row[header["Type"]])
		defval := base.FixNull(row[header["Default"]])
		nullable := base.FixNull(row[header["Null"]]) == "YES"
		isPK := base.FixNull(row[header["Key"]]) == "PRI"

		cell, ok := expected[name]
		if !ok {
			return core.NewSchemeMismatchError(name, "column",
				"Column '%s' does not exist in the scheme", name)
		}
		expectedType := c.Dialect.TypeName(cell.Hint())
		if expectedType == "INTEGER" {
			expectedType = "int"
		}
		if !strings.EqualFold(typ, expectedType) {
			return core.NewSchemeMismatchError(name, "type",
				"Type %s of column '%s' does not match type %s in scheme", typ, name, expectedType)
		}
		if defval != cell.Config().String() &&
			!(defval == "<null>" && cell.Config().IsEmpty()) &&
			!(defval == "" && cell.Config().IsEmpty()) {
			return core.NewSchemeMismatchError(name, "default",
				"Default value '%s' of column '%s' does not match expected value %s",
				defval, name, cell.Config().String())
		}
		if nullable != cell.IsNullable() {
			return core.NewSchemeMismatchError(name, "nullable",
				"The value of the nullable flag for column '%s' has value (%t) and does not match expected (%t)",
				name, nullable, cell.IsNullable())
		}
		if isPK != cell.HasFlag(core.PrimaryKey) {
			return core.NewSchemeMismatchError(name, "primary key",
				"Primary key flag of column '%s' does not match the scheme", name)
		}
		delete(expected, name)
		return nil
	}

	describe := query.NewStatement("DESCRIBE " + scheme.Name() + ";")
	if err := c.PerformStatements([]query.Statement{describe}, processRow); err != nil {
		return err
	}
	for name := range expected {
		return core.NewSchemeMismatchError(name, "column",
			"Column '%s' from scheme does not exist in the table", name)
	}
	return nil
}
