// Package dialect lowers query objects to tokenized statements in a concrete
// SQL dialect. The generic builder implements the common forms; per-DBMS
// builders override representation hooks and whole variants where the dialect
// diverges.
package dialect

import (
	"dbfacade/core"
	"dbfacade/query"
)

// Type identifies a supported SQL dialect.
type Type string

const (
	SQLite Type = "sqlite"
	MySQL  Type = "mysql"
)

// Builder converts query objects into one or more statements. One method per
// query variant; representation hooks let drivers reuse the lowering while
// adjusting type names and column descriptions.
type Builder interface {
	BuildCreate(q *query.CreateQuery) ([]query.Statement, error)
	BuildInsert(q *query.InsertQuery) ([]query.Statement, error)
	BuildSelect(q *query.SelectQuery) ([]query.Statement, error)
	BuildUpdate(q *query.UpdateQuery) ([]query.Statement, error)
	BuildRemove(q *query.RemoveQuery) ([]query.Statement, error)
	BuildAlter(q *query.AlterQuery) ([]query.Statement, error)
	BuildDrop(q *query.DropQuery) ([]query.Statement, error)
	BuildBegin() ([]query.Statement, error)
	BuildCommit() ([]query.Statement, error)
	BuildRollback() ([]query.Statement, error)

	// TypeName maps a portable type hint to the dialect's column type.
	TypeName(hint core.TypeHint) string
}

// Build lowers any query through the builder, dispatching on the variant.
func Build(b Builder, q query.Query) ([]query.Statement, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	switch t := q.(type) {
	case *query.CreateQuery:
		return b.BuildCreate(t)
	case *query.InsertQuery:
		return b.BuildInsert(t)
	case *query.SelectQuery:
		return b.BuildSelect(t)
	case *query.UpdateQuery:
		return b.BuildUpdate(t)
	case *query.RemoveQuery:
		return b.BuildRemove(t)
	case *query.AlterQuery:
		return b.BuildAlter(t)
	case *query.DropQuery:
		return b.BuildDrop(t)
	case *query.TxQuery:
		switch t.Kind() {
		case query.KindBegin:
			return b.BuildBegin()
		case query.KindCommit:
			return b.BuildCommit()
		case query.KindRollback:
			return b.BuildRollback()
		}
	}
	return nil, core.NewUsageError("unsupported query type %T", q)
}

var registry = map[Type]func() Builder{}

// Register installs a builder factory for a dialect.
func Register(t Type, factory func() Builder) {
	registry[t] = factory
}

// New returns a fresh builder for the dialect.
func New(t Type) (Builder, error) {
	factory, ok := registry[t]
	if !ok {
		return nil, core.NewUsageError("unknown dialect %q", t)
	}
	return factory(), nil
}
