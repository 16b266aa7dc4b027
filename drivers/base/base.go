// Package base carries the driver plumbing shared by the concrete backends:
// statement execution over database/sql, parameter binding, and result-row
// delivery. Concrete drivers embed Conn and add connection construction and
// scheme verification.
package base

import (
	"context"
	"database/sql"
	"sync"

	"dbfacade"
	"dbfacade/core"
	"dbfacade/dialect"
	"dbfacade/query"
)

// Conn implements the statement-execution half of dbfacade.Connection over a
// database/sql handle. A mutex serializes every driver call, so facades
// sharing one connection interleave at statement granularity. The pool is
// expected to be pinned to a single physical connection (SetMaxOpenConns(1))
// so that transaction statements issued as plain queries stay on the driver
// handle they began on.
type Conn struct {
	mu      sync.Mutex
	DB      *sql.DB
	Dialect dialect.Builder
	Log     dbfacade.Logger
}

// Builder returns the dialect builder queries are lowered through.
func (c *Conn) Builder() dialect.Builder { return c.Dialect }

// Close releases the database handle.
func (c *Conn) Close() error { return c.DB.Close() }

// Perform lowers the query and executes the resulting statements.
func (c *Conn) Perform(q query.Query, fn dbfacade.RowFunc) error {
	stmts, err := dialect.Build(c.Dialect, q)
	if err != nil {
		return err
	}
	return c.PerformStatements(stmts, fn)
}

// PerformStatements executes the statements in order under the connection
// lock. A failing statement stops the sequence; the remaining statements are
// not executed.
func (c *Conn) PerformStatements(stmts []query.Statement, fn dbfacade.RowFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx := context.Background()
	for _, stmt := range stmts {
		if err := c.performOne(ctx, stmt, fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conn) performOne(ctx context.Context, stmt query.Statement, fn dbfacade.RowFunc) error {
	sqlText := stmt.Compose("?")
	args, err := BindArgs(stmt.Parameters())
	if err != nil {
		return err
	}
	if fn == nil {
		if _, err := c.DB.ExecContext(ctx, sqlText, args...); err != nil {
			c.warn(ctx, sqlText, err)
			return core.NewDriverError(err, sqlText)
		}
		return nil
	}
	rows, err := c.DB.QueryContext(ctx, sqlText, args...)
	if err != nil {
		c.warn(ctx, sqlText, err)
		return core.NewDriverError(err, sqlText)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return core.NewDriverError(err, sqlText)
	}
	header := make(map[string]int, len(cols))
	for i, name := range cols {
		header[name] = i
	}

	raw := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return core.NewDriverError(err, sqlText)
		}
		row := make([]*string, len(cols))
		for i := range raw {
			if raw[i].Valid {
				v := raw[i].String
				row[i] = &v
			}
		}
		if err := fn(header, row); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return core.NewDriverError(err, sqlText)
	}
	return nil
}

func (c *Conn) warn(ctx context.Context, sqlText string, err error) {
	if c.Log != nil {
		c.Log.WarnContext(ctx, "statement failed", "sql", sqlText, "error", err)
	}
}

// BindArgs converts bound values into driver arguments.
func BindArgs(params []core.Value) ([]any, error) {
	if len(params) == 0 {
		return nil, nil
	}
	args := make([]any, len(params))
	for i, p := range params {
		switch p.Subtype() {
		case core.Null:
			args[i] = nil
		case core.Integer:
			args[i] = p.Int()
		case core.String, core.DateTime:
			args[i] = p.Str()
		case core.Blob:
			args[i] = p.Bytes()
		default:
			return nil, core.NewConversionError("cannot bind an empty value")
		}
	}
	return args, nil
}

// FixNull maps a missing cell to the empty string for metadata comparisons.
func FixNull(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
