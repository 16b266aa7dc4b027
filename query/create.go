package query

import "dbfacade/core"

// CreateQuery creates a table, either from its scheme or as a copy of
// another table's data (CREATE … AS SELECT).
type CreateQuery struct {
	base
	source   *core.TableScheme
	where    Condition
	orderBys []OrderBy
}

// CreateTable forms a CREATE TABLE query for S's scheme.
func CreateTable[S any]() *CreateQuery {
	q := &CreateQuery{base: newBase[S](KindCreate)}
	if q.err == nil {
		q.cells = q.scheme.Cells()
	}
	return q
}

// CreateTableAs forms a CREATE TABLE … AS SELECT query populating S's table
// from Src's. Columns of S missing in Src are filled with their defaults, or
// NULL when none is configured.
func CreateTableAs[S, Src any]() *CreateQuery {
	q := CreateTable[S]()
	source, err := core.SchemeOf[Src]()
	if err != nil {
		q.fail(err)
		return q
	}
	q.source = source
	return q
}

// Where filters the rows copied by a CREATE … AS SELECT.
func (q *CreateQuery) Where(c Condition) *CreateQuery {
	if c.Err() != nil {
		q.fail(c.Err())
	}
	q.where = c
	return q
}

// OrderBy appends an ORDER BY term to the copying select.
func (q *CreateQuery) OrderBy(o OrderBy) *CreateQuery {
	q.orderBys = append(q.orderBys, o)
	return q
}

// SchemeSource returns the source scheme of a CREATE … AS SELECT, nil for a
// plain create.
func (q *CreateQuery) SchemeSource() *core.TableScheme { return q.source }

// Condition returns the copying select's WHERE condition.
func (q *CreateQuery) Condition() Condition { return q.where }

// OrderBys returns the copying select's ORDER BY terms.
func (q *CreateQuery) OrderBys() []OrderBy { return q.orderBys }
