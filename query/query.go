package query

import "dbfacade/core"

// Kind tags a query variant, replacing double dispatch with a single switch
// inside the dialect builder.
type Kind int

const (
	KindCreate Kind = iota
	KindInsert
	KindSelect
	KindUpdate
	KindRemove
	KindAlter
	KindDrop
	KindBegin
	KindCommit
	KindRollback
)

// Query is the common surface of all query objects. A query is built once,
// consumed by one facade call, and never mutated by a backend.
type Query interface {
	Kind() Kind
	Scheme() *core.TableScheme
	Cells() []core.Cell
	// Err returns the first error captured while building the query; lowering
	// refuses a query whose construction failed.
	Err() error
}

// base carries the fields every query variant shares.
type base struct {
	kind   Kind
	scheme *core.TableScheme
	cells  []core.Cell
	err    error
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) Scheme() *core.TableScheme { return b.scheme }

func (b *base) Cells() []core.Cell { return b.cells }

func (b *base) Err() error { return b.err }

// Table returns the name of the table the query addresses.
func (b *base) Table() string {
	if b.scheme == nil {
		return ""
	}
	return b.scheme.Name()
}

func (b *base) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func newBase[S any](kind Kind) base {
	b := base{kind: kind}
	b.scheme, b.err = core.SchemeOf[S]()
	return b
}

// serializeAll copies every scheme cell with its value extracted from data.
func serializeAll[S any](b *base, data *S) {
	if b.err != nil {
		return
	}
	cells := b.scheme.Cells()
	for i, cell := range cells {
		serialized, err := cell.Serialized(data)
		if err != nil {
			b.fail(err)
			return
		}
		cells[i] = serialized
	}
	b.cells = cells
}

// serializeFields copies the given cells with values extracted from data.
func serializeFields[S any](b *base, data *S, fields []core.Cell) {
	if b.err != nil {
		return
	}
	cells := make([]core.Cell, 0, len(fields))
	for _, cell := range fields {
		serialized, err := cell.Serialized(data)
		if err != nil {
			b.fail(err)
			return
		}
		cells = append(cells, serialized)
	}
	b.cells = cells
}
