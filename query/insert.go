package query

import "dbfacade/core"

// InsertQuery adds one row to a table.
type InsertQuery struct {
	base
}

// Insert forms an INSERT query carrying every column of data.
func Insert[S any](data *S) *InsertQuery {
	q := &InsertQuery{base: newBase[S](KindInsert)}
	serializeAll(&q.base, data)
	return q
}

// InsertFields forms an INSERT query carrying only the given fields of data;
// the remaining columns take their database defaults.
func InsertFields[S any](data *S, fields ...core.Cell) *InsertQuery {
	q := &InsertQuery{base: newBase[S](KindInsert)}
	serializeFields(&q.base, data, fields)
	return q
}
