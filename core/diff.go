package core

import "sort"

// DiffKind enumerates the conversion steps the diff engine can emit.
type DiffKind int

const (
	DiffNoOp DiffKind = iota
	DiffRenameTable
	DiffAddColumn
	DiffDropColumn // some dialects cannot drop columns natively
	DiffRenameColumn
)

// DiffAction is one ordered step converting a table from one scheme to
// another.
type DiffAction struct {
	Kind  DiffKind
	Cell  Cell   // AddColumn / DropColumn subject
	Table string // RenameTable target
	From  Cell   // RenameColumn source
	To    Cell   // RenameColumn target
}

func noOp() DiffAction { return DiffAction{Kind: DiffNoOp} }

func renameTable(name string) DiffAction { return DiffAction{Kind: DiffRenameTable, Table: name} }

func addColumn(cell Cell) DiffAction { return DiffAction{Kind: DiffAddColumn, Cell: cell} }

func dropColumn(cell Cell) DiffAction { return DiffAction{Kind: DiffDropColumn, Cell: cell} }

// missingCells returns the cells of a that have no same-named column in b,
// ordered by name.
func missingCells(a, b *TableScheme) []Cell {
	names := make(map[string]struct{}, len(b.cells))
	for _, cell := range b.cells {
		names[cell.name] = struct{}{}
	}
	var out []Cell
	for _, cell := range a.cells {
		if _, ok := names[cell.name]; !ok {
			out = append(out, cell)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ConversionSteps computes the ordered steps converting this scheme into the
// target: drops first, then adds, then a table rename when names differ.
//
// The structural diff cannot tell a rename apart from a drop plus an add;
// callers that mean a rename must rewrite the steps with RenameColumn.
func (s *TableScheme) ConversionSteps(to *TableScheme) []DiffAction {
	var steps []DiffAction
	for _, cell := range missingCells(s, to) {
		steps = append(steps, dropColumn(cell))
	}
	for _, cell := range missingCells(to, s) {
		steps = append(steps, addColumn(cell))
	}
	if s.name != to.name {
		steps = append(steps, renameTable(to.name))
	}
	return steps
}

// ConversionSteps computes the steps converting From's scheme into To's.
func ConversionSteps[From, To any]() ([]DiffAction, error) {
	from, err := SchemeOf[From]()
	if err != nil {
		return nil, err
	}
	to, err := SchemeOf[To]()
	if err != nil {
		return nil, err
	}
	return from.ConversionSteps(to), nil
}

// RenameColumn rewrites a drop-plus-add pair inside steps into an explicit
// rename: the drop of from becomes a RenameColumn and the add of to becomes a
// no-op. Either step missing is a UsageError.
func RenameColumn(steps []DiffAction, from, to Cell) error {
	dropIdx := -1
	for i, step := range steps {
		if step.Kind == DiffDropColumn && step.Cell.UnqualifiedName() == from.UnqualifiedName() {
			dropIdx = i
			break
		}
	}
	if dropIdx < 0 {
		return NewUsageError("no such column (src): %s", from.Name())
	}
	addIdx := -1
	for i, step := range steps {
		if step.Kind == DiffAddColumn && step.Cell.UnqualifiedName() == to.UnqualifiedName() {
			addIdx = i
			break
		}
	}
	if addIdx < 0 {
		return NewUsageError("no such column (dst): %s", to.Name())
	}
	steps[dropIdx] = DiffAction{Kind: DiffRenameColumn, From: from, To: to}
	steps[addIdx] = noOp()
	return nil
}
