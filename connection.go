// Package dbfacade provides a typed facade over SQL databases: declared
// record schemes, composable typed queries, pluggable backend drivers, and
// materialization of result rows back into records.
package dbfacade

import (
	"dbfacade/core"
	"dbfacade/dialect"
	"dbfacade/query"
)

// RowFunc consumes one result row: a column-name→index map and the raw cell
// values, nil marking SQL NULL.
type RowFunc func(header map[string]int, row []*string) error

// Connection is the driver surface this facade consumes. Implementations own
// a single driver handle and must serialize concurrent calls at statement
// granularity.
type Connection interface {
	// Perform lowers the query through the connection's dialect builder and
	// drives it to completion, invoking fn once per result row when non-nil.
	Perform(q query.Query, fn RowFunc) error

	// PerformStatements executes an ordered list of already lowered
	// statements. Statements with bound parameters are prepared and bound
	// positionally.
	PerformStatements(stmts []query.Statement, fn RowFunc) error

	// VerifyScheme compares the declared scheme against the live table
	// metadata and fails with a SchemeMismatchError on the first difference.
	VerifyScheme(scheme *core.TableScheme) error

	// Builder returns the connection's dialect builder.
	Builder() dialect.Builder

	// Close releases the underlying driver handle.
	Close() error
}
