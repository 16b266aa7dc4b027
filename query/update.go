package query

import "dbfacade/core"

// UpdateQuery rewrites columns of existing rows.
type UpdateQuery struct {
	base
	where Condition
}

// Update forms a full-row UPDATE from data: every non-primary-key column goes
// into the SET list and the primary key becomes the WHERE condition. Every
// field of data is written, including zero values.
func Update[S any](data *S) *UpdateQuery {
	q := &UpdateQuery{base: newBase[S](KindUpdate)}
	serializeAll(&q.base, data)
	if q.err != nil {
		return q
	}
	kept := q.cells[:0]
	for _, cell := range q.cells {
		if cell.HasFlag(core.PrimaryKey) {
			q.where = C(cell).EQ(cell.Value())
			continue
		}
		kept = append(kept, cell)
	}
	q.cells = kept
	return q
}

// UpdateFields forms an UPDATE that only writes the given fields of data.
// Updating zero fields is a usage error.
func UpdateFields[S any](data *S, fields ...core.Cell) *UpdateQuery {
	q := &UpdateQuery{base: newBase[S](KindUpdate)}
	if len(fields) == 0 {
		q.fail(core.NewUsageError("no columns to update"))
		return q
	}
	serializeFields(&q.base, data, fields)
	return q
}

// Where replaces the row filter. The primary-key condition generated by a
// full-row update is overwritten.
func (q *UpdateQuery) Where(c Condition) *UpdateQuery {
	if c.Err() != nil {
		q.fail(c.Err())
	}
	q.where = c
	return q
}

// Condition returns the WHERE condition.
func (q *UpdateQuery) Condition() Condition { return q.where }
