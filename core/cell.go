package core

// Flags is the bitset of column properties a cell can carry.
type Flags uint32

const (
	None          Flags = 0
	Unique        Flags = 2
	PrimaryKey    Flags = 4
	Check         Flags = 16
	Default       Flags = 32
	AutoIncrement Flags = 64
	Custom        Flags = 256
)

// Cell describes one column of a table scheme: its name, optional table
// qualifier, portable type hint, flags, default value, nullability, and the
// erased accessor pair bound to the owning record type.
//
// Cells are value types; queries copy them and stamp serialized row values
// into the copies. A cell's accessors are callable only against records of
// the type it was declared for.
type Cell struct {
	name     string
	table    string
	hint     TypeHint
	flags    Flags
	config   Value // default value, Empty when none is configured
	value    Value // serialized row value, Empty until Serialized is called
	nullable bool

	serialize   func(rec any) (Value, error)
	deserialize func(raw *string, rec any) error

	err error // deferred construction error, surfaced by NewScheme
}

// Column declares a cell over a record field using the standard converter for
// T. The accessor is the field's identity: it locates the field inside any
// record of type S.
func Column[S any, T any](name string, get func(*S) *T, flags Flags) Cell {
	conv, err := StandardConverter[T]()
	if err != nil {
		return Cell{name: name, err: err}
	}
	return ColumnWith(name, get, conv, flags)
}

// ColumnWith declares a cell with an explicit converter, fully overriding the
// standard one.
func ColumnWith[S any, T any](name string, get func(*S) *T, conv Converter[T], flags Flags) Cell {
	c := Cell{
		name:     name,
		hint:     conv.Hint,
		flags:    flags,
		nullable: conv.Nullable,
	}
	c.serialize = func(rec any) (Value, error) {
		s, ok := rec.(*S)
		if !ok {
			return Value{}, NewConversionError("cell %q cannot serialize record of type %T", name, rec)
		}
		return conv.From(*get(s))
	}
	c.deserialize = func(raw *string, rec any) error {
		s, ok := rec.(*S)
		if !ok {
			return NewConversionError("cell %q cannot deserialize into record of type %T", name, rec)
		}
		v, err := conv.To(raw)
		if err != nil {
			return err
		}
		*get(s) = v
		return nil
	}
	return c
}

// ColumnDefault declares a cell with a DEFAULT value, serialized through the
// standard converter for T.
func ColumnDefault[S any, T any](name string, get func(*S) *T, flags Flags, def T) Cell {
	conv, err := StandardConverter[T]()
	if err != nil {
		return Cell{name: name, err: err}
	}
	return ColumnWithDefault(name, get, conv, flags, def)
}

// ColumnWithDefault declares a cell with an explicit converter and a DEFAULT
// value.
func ColumnWithDefault[S any, T any](name string, get func(*S) *T, conv Converter[T], flags Flags, def T) Cell {
	c := ColumnWith(name, get, conv, flags|Default)
	cfg, err := conv.From(def)
	if err != nil {
		c.err = err
		return c
	}
	c.config = cfg
	return c
}

// Name returns the qualified name (table.column) when a table qualifier is
// attached, the bare column name otherwise.
func (c Cell) Name() string {
	if c.table == "" {
		return c.name
	}
	return c.table + "." + c.name
}

// UnqualifiedName returns the column name without the table qualifier.
func (c Cell) UnqualifiedName() string { return c.name }

// TableName returns the attached table qualifier, if any.
func (c Cell) TableName() string { return c.table }

// WithTable returns a copy of the cell qualified with the given table name.
func (c Cell) WithTable(table string) Cell {
	c.table = table
	return c
}

func (c Cell) Hint() TypeHint   { return c.hint }
func (c Cell) Flags() Flags     { return c.flags }
func (c Cell) Config() Value    { return c.config }
func (c Cell) Value() Value     { return c.value }
func (c Cell) IsNullable() bool { return c.nullable }

// HasFlag reports whether the cell carries the given flag.
func (c Cell) HasFlag(f Flags) bool { return c.flags&f != 0 }

// Serialized returns a copy of the cell holding the value extracted from rec.
func (c Cell) Serialized(rec any) (Cell, error) {
	if c.serialize == nil {
		return c, NewConversionError("cell %q has no serializer", c.name)
	}
	v, err := c.serialize(rec)
	if err != nil {
		return c, err
	}
	c.value = v
	return c, nil
}

// Deserialize stores the raw driver cell into the corresponding field of rec.
// raw is nil for SQL NULL.
func (c Cell) Deserialize(raw *string, rec any) error {
	if c.deserialize == nil {
		return NewConversionError("cell %q has no deserializer", c.name)
	}
	return c.deserialize(raw, rec)
}
