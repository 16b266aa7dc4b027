package query

import "dbfacade/core"

// AlterQuery converts a table from one scheme to another by an ordered list
// of diff actions.
type AlterQuery struct {
	base
	steps []core.DiffAction
}

// Alter forms an ALTER query converting Old's table layout into New's. The
// steps are computed structurally; columns that moved names must be marked
// with RenamingCell or they convert as a drop plus an add.
func Alter[Old, New any]() *AlterQuery {
	q := &AlterQuery{base: newBase[Old](KindAlter)}
	if q.err != nil {
		return q
	}
	q.cells = q.scheme.Cells()
	steps, err := core.ConversionSteps[Old, New]()
	if err != nil {
		q.fail(err)
		return q
	}
	q.steps = steps
	return q
}

// RenamingCell rewrites the drop/add pair of the two columns into an explicit
// rename, preserving the column's data.
func (q *AlterQuery) RenamingCell(from, to core.Cell) *AlterQuery {
	if q.err != nil {
		return q
	}
	if err := core.RenameColumn(q.steps, from, to); err != nil {
		q.fail(err)
	}
	return q
}

// Steps returns the ordered conversion steps.
func (q *AlterQuery) Steps() []core.DiffAction { return q.steps }
