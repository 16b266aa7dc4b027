package dialect

import (
	"fmt"
	"strings"

	"dbfacade/core"
	"dbfacade/query"
)

func init() {
	Register(SQLite, func() Builder { return NewSQLite() })
}

// SQLiteBuilder adjusts the generic lowering for SQLite: an infinite LIMIT
// renders as -1, and ALTERs that drop columns are synthesized as a table-copy
// transaction because SQLite cannot drop columns in place.
type SQLiteBuilder struct {
	*Generic
}

// NewSQLite returns the SQLite dialect builder.
func NewSQLite() *SQLiteBuilder {
	g := NewGeneric()
	g.Repr.Limit = sqliteLimit
	return &SQLiteBuilder{Generic: g}
}

func sqliteLimit(l query.ResultLimit) string {
	if !l.Defined() {
		return ""
	}
	if l.Finite() {
		return fmt.Sprintf(" LIMIT %d, %d", l.Offset, l.Limit)
	}
	return fmt.Sprintf(" LIMIT %d, -1", l.Offset)
}

// BuildAlter falls back to per-step ALTER statements when no column is
// dropped. Otherwise it emits the five-statement table-copy transaction:
// copy the surviving columns into tmp_<table>, drop the original, rename the
// copy to the (possibly new) table name.
func (b *SQLiteBuilder) BuildAlter(q *query.AlterQuery) ([]query.Statement, error) {
	steps := q.Steps()
	dropsColumn := false
	for _, step := range steps {
		if step.Kind == core.DiffDropColumn {
			dropsColumn = true
			break
		}
	}
	if !dropsColumn {
		return b.Generic.BuildAlter(q)
	}

	table := q.Table()
	cols := b.columns(q.Cells())
	for i := range cols {
		// existing columns copy their data; only added columns select a default
		cols[i].defval = core.EmptyValue()
	}
	newTableName := table
	for _, step := range steps {
		switch step.Kind {
		case core.DiffRenameTable:
			newTableName = step.Table
		case core.DiffAddColumn:
			col := b.column(step.Cell)
			if col.defval.IsEmpty() {
				// a freshly added column needs something to select
				col.defval = core.NullValue()
			}
			cols = append(cols, col)
		case core.DiffDropColumn:
			idx := columnIndex(cols, step.Cell.UnqualifiedName())
			if idx < 0 {
				return nil, core.NewUsageError("no such column (src): %s", step.Cell.Name())
			}
			cols = append(cols[:idx], cols[idx+1:]...)
		case core.DiffRenameColumn:
			idx := columnIndex(cols, step.From.UnqualifiedName())
			if idx < 0 {
				return nil, core.NewUsageError("no such column (src): %s", step.From.Name())
			}
			cols[idx].alias = step.To.UnqualifiedName()
		}
	}

	fields := b.fieldsWithCasts(cols)
	return []query.Statement{
		query.NewStatement("BEGIN TRANSACTION;"),
		query.NewStatement("CREATE TABLE tmp_" + table + " AS SELECT " + strings.Join(fields, ", ") + " FROM " + table + ";"),
		query.NewStatement("DROP TABLE " + table + ";"),
		query.NewStatement("ALTER TABLE tmp_" + table + " RENAME TO " + newTableName + ";"),
		query.NewStatement("COMMIT;"),
	}, nil
}

func columnIndex(cols []column, name string) int {
	for i, col := range cols {
		if col.name == name {
			return i
		}
	}
	return -1
}
