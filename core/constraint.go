package core

// Constraint is a table-level constraint node. Rendering is dialect business;
// the core only validates that a constraint is well formed for its scheme.
type Constraint interface {
	Validate(scheme *TableScheme) error
}

// CascadeTrigger selects which referential event a cascade rule fires on.
type CascadeTrigger int

const (
	OnUpdate CascadeTrigger = iota
	OnDelete
)

// String returns the SQL keyword for the trigger.
func (t CascadeTrigger) String() string {
	if t == OnDelete {
		return "ON DELETE"
	}
	return "ON UPDATE"
}

// CascadeAction is the referential action taken when a trigger fires.
type CascadeAction int

const (
	NoAction CascadeAction = iota
	Restrict
	SetNull
	SetDefault
	Cascade
)

// String returns the SQL keyword for the action.
func (a CascadeAction) String() string {
	switch a {
	case Restrict:
		return "RESTRICT"
	case SetNull:
		return "SET NULL"
	case SetDefault:
		return "SET DEFAULT"
	case Cascade:
		return "CASCADE"
	}
	return "NO ACTION"
}

// CascadeRule pairs a trigger with its action.
type CascadeRule struct {
	Trigger CascadeTrigger
	Action  CascadeAction
}

// OnUpdateDo builds an ON UPDATE rule.
func OnUpdateDo(a CascadeAction) CascadeRule { return CascadeRule{Trigger: OnUpdate, Action: a} }

// OnDeleteDo builds an ON DELETE rule.
func OnDeleteDo(a CascadeAction) CascadeRule { return CascadeRule{Trigger: OnDelete, Action: a} }

// ForeignKey declares that a column of the owning scheme references a column
// of another record's table.
type ForeignKey struct {
	Column  string // column of the owning scheme
	Foreign Cell   // qualified cell of the referenced table
	Rules   []CascadeRule

	err error
}

// NewForeignKey builds a foreign key referencing the given column of the
// Foreign record's table. A lookup failure is deferred to scheme validation.
func NewForeignKey[Foreign any](ownColumn, foreignColumn string, rules ...CascadeRule) *ForeignKey {
	fk := &ForeignKey{Column: ownColumn, Rules: rules}
	fk.Foreign, fk.err = FieldOf[Foreign](foreignColumn)
	return fk
}

// Validate checks that the owning column exists and the referenced cell
// resolved.
func (fk *ForeignKey) Validate(scheme *TableScheme) error {
	if fk.err != nil {
		return fk.err
	}
	if _, err := scheme.Cell(fk.Column); err != nil {
		return err
	}
	return nil
}
