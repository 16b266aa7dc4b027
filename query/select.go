package query

import "dbfacade/core"

// SelectQuery selects rows from a table, optionally joined with others.
type SelectQuery struct {
	base
	where    Condition
	joins    []Join
	orderBys []OrderBy
	limits   ResultLimit
}

// Select forms a SELECT query over S's table projecting the given fields.
// An empty projection selects every column. Only the projected fields of the
// received records carry data.
func Select[S any](fields ...core.Cell) *SelectQuery {
	q := &SelectQuery{
		base:   newBase[S](KindSelect),
		limits: ResultLimit{Limit: InfiniteLimit},
	}
	q.cells = append([]core.Cell(nil), fields...)
	return q
}

// Where sets the row filter.
func (q *SelectQuery) Where(c Condition) *SelectQuery {
	if c.Err() != nil {
		q.fail(c.Err())
	}
	q.where = c
	return q
}

// JoinScheme appends a "JOIN table ON condition" clause for the given scheme.
// Joins render in the order they were added.
func (q *SelectQuery) JoinScheme(scheme *core.TableScheme, on Condition) *SelectQuery {
	if on.Err() != nil {
		q.fail(on.Err())
	}
	q.joins = append(q.joins, Join{Table: scheme.Name(), On: on})
	return q
}

// Joined appends a join against record type J's table.
func Joined[J any](q *SelectQuery, on Condition) *SelectQuery {
	scheme, err := core.SchemeOf[J]()
	if err != nil {
		q.fail(err)
		return q
	}
	return q.JoinScheme(scheme, on)
}

// OrderBy appends an ORDER BY term.
func (q *SelectQuery) OrderBy(o OrderBy) *SelectQuery {
	q.orderBys = append(q.orderBys, o)
	return q
}

// Limit caps the number of fetched rows.
func (q *SelectQuery) Limit(n uint64) *SelectQuery {
	q.limits.Limit = n
	return q
}

// Offset skips the first n rows of the result.
func (q *SelectQuery) Offset(n uint64) *SelectQuery {
	q.limits.Offset = n
	return q
}

// Condition returns the WHERE condition.
func (q *SelectQuery) Condition() Condition { return q.where }

// Joins returns the join list in construction order.
func (q *SelectQuery) Joins() []Join { return q.joins }

// OrderBys returns the ORDER BY terms.
func (q *SelectQuery) OrderBys() []OrderBy { return q.orderBys }

// Limits returns the offset/limit pair.
func (q *SelectQuery) Limits() ResultLimit { return q.limits }
