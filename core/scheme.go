package core

import (
	"reflect"
	"sync"
)

// TableScheme is the declared correspondence between a record type and a
// table: a name, an ordered list of cells, and table-level constraints.
// Schemes are immutable after construction.
type TableScheme struct {
	name        string
	cells       []Cell
	constraints []Constraint
}

// NewScheme validates and builds a scheme. Construction fails with a
// SchemaError for an unnamed column, a duplicate column name, or more than one
// primary key. A cell whose deferred construction error fired, or a constraint
// that fails validation, makes it fail with that error.
func NewScheme(name string, cells []Cell, constraints ...Constraint) (*TableScheme, error) {
	seen := make(map[string]struct{}, len(cells))
	primaries := 0
	for _, cell := range cells {
		if cell.err != nil {
			return nil, cell.err
		}
		if cell.name == "" {
			return nil, NewSchemaError("column is unnamed in table %s", name)
		}
		if _, dup := seen[cell.name]; dup {
			return nil, NewSchemaError("duplicate column %q in table %s", cell.name, name)
		}
		seen[cell.name] = struct{}{}
		if cell.HasFlag(PrimaryKey) {
			primaries++
		}
	}
	if primaries > 1 {
		return nil, NewSchemaError("at least two primary keys were detected in table %s", name)
	}
	s := &TableScheme{
		name:        name,
		cells:       append([]Cell(nil), cells...),
		constraints: append([]Constraint(nil), constraints...),
	}
	for _, c := range s.constraints {
		if err := c.Validate(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustScheme is NewScheme panicking on error, for package-level declarations.
func MustScheme(name string, cells []Cell, constraints ...Constraint) *TableScheme {
	s, err := NewScheme(name, cells, constraints...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the table name.
func (s *TableScheme) Name() string { return s.name }

// Cells returns a copy of the ordered column list.
func (s *TableScheme) Cells() []Cell {
	return append([]Cell(nil), s.cells...)
}

// Constraints returns the table-level constraints.
func (s *TableScheme) Constraints() []Constraint {
	return append([]Constraint(nil), s.constraints...)
}

// Cell returns the column with the given name, failing with a SchemaError
// when the column was never declared.
func (s *TableScheme) Cell(name string) (Cell, error) {
	if cell, ok := s.FindCell(name); ok {
		return cell, nil
	}
	return Cell{}, NewSchemaError("column %q is not declared in table %s", name, s.name)
}

// FindCell looks up a column by unqualified name.
func (s *TableScheme) FindCell(name string) (Cell, bool) {
	for _, cell := range s.cells {
		if cell.name == name {
			return cell, true
		}
	}
	return Cell{}, false
}

// PrimaryKey returns the primary key column, if the scheme declares one.
func (s *TableScheme) PrimaryKey() (Cell, bool) {
	for _, cell := range s.cells {
		if cell.HasFlag(PrimaryKey) {
			return cell, true
		}
	}
	return Cell{}, false
}

// lazyScheme defers building and caches both the result and the error, so a
// record type's scheme is constructed exactly once per process.
type lazyScheme struct {
	build  func() (*TableScheme, error)
	scheme *TableScheme
	err    error
	done   bool
}

var (
	schemeRegistry sync.Map // reflect.Type -> *lazyScheme
	buildMu        sync.Mutex
	building       = map[reflect.Type]bool{}
)

func (l *lazyScheme) get(rt reflect.Type) (*TableScheme, error) {
	buildMu.Lock()
	if l.done {
		buildMu.Unlock()
		return l.scheme, l.err
	}
	if building[rt] {
		// A scheme builder reached itself through its constraints. Cyclic
		// foreign keys between schemes are rejected rather than deferred.
		buildMu.Unlock()
		return nil, NewUsageError("cyclic scheme dependency involving %s", rt)
	}
	building[rt] = true
	buildMu.Unlock()

	scheme, err := l.build()

	buildMu.Lock()
	delete(building, rt)
	l.scheme, l.err, l.done = scheme, err, true
	buildMu.Unlock()
	return scheme, err
}

func recordType[S any]() reflect.Type {
	return reflect.TypeOf((*S)(nil)).Elem()
}

// RegisterScheme installs the canonical scheme builder for record type S.
// The builder runs lazily on first use and its result is shared process-wide.
func RegisterScheme[S any](build func() (*TableScheme, error)) {
	schemeRegistry.Store(recordType[S](), &lazyScheme{build: build})
}

// SchemeOf returns the canonical scheme of record type S.
func SchemeOf[S any]() (*TableScheme, error) {
	rt := recordType[S]()
	v, ok := schemeRegistry.Load(rt)
	if !ok {
		return nil, NewSchemaError("no scheme registered for type %s", rt)
	}
	return v.(*lazyScheme).get(rt)
}

// FieldOf resolves a declared column of S's scheme and qualifies it with the
// table name, ready for use in conditions, projections, and joins. It fails
// with a SchemaError when the column is not declared.
func FieldOf[S any](column string) (Cell, error) {
	scheme, err := SchemeOf[S]()
	if err != nil {
		return Cell{}, err
	}
	cell, err := scheme.Cell(column)
	if err != nil {
		return Cell{}, err
	}
	return cell.WithTable(scheme.Name()), nil
}

// MustField is FieldOf panicking on error, for package-level field handles.
func MustField[S any](column string) Cell {
	cell, err := FieldOf[S](column)
	if err != nil {
		panic(err)
	}
	return cell
}
