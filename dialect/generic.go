package dialect

import (
	"fmt"
	"strings"

	"dbfacade/core"
	"dbfacade/query"
)

// Representation holds the per-dialect hooks for rendering columns: type
// names, cast targets, column descriptions, and the LIMIT clause form.
// Concrete dialects replace individual hooks and keep the rest.
type Representation struct {
	TypeName    func(hint core.TypeHint) string
	CastType    func(typeName string) string
	Description func(cell core.Cell) string
	Limit       func(l query.ResultLimit) string
}

// Generic lowers queries to the common SQL forms shared by the supported
// dialects.
type Generic struct {
	Repr Representation
}

// NewGeneric returns a builder with the default representation hooks.
func NewGeneric() *Generic {
	return &Generic{Repr: Representation{
		TypeName:    GenericTypeName,
		CastType:    func(typeName string) string { return typeName },
		Description: GenericDescription,
		Limit:       genericLimit,
	}}
}

// GenericTypeName maps portable hints to the default column types.
func GenericTypeName(hint core.TypeHint) string {
	switch hint.Type {
	case core.HintInteger:
		return "INTEGER"
	case core.HintDateTime:
		return "DATETIME"
	}
	return "TEXT"
}

// GenericDescription renders the flag-driven part of a column definition.
func GenericDescription(cell core.Cell) string {
	var b strings.Builder
	if cell.HasFlag(core.PrimaryKey) {
		b.WriteString(" PRIMARY KEY")
	}
	if cell.HasFlag(core.Unique) {
		b.WriteString(" UNIQUE")
	}
	if cell.HasFlag(core.AutoIncrement) {
		b.WriteString(" AUTOINCREMENT")
	}
	if !cell.IsNullable() {
		b.WriteString(" NOT NULL")
	}
	if cell.HasFlag(core.Default) {
		b.WriteString(" DEFAULT '" + cell.Config().String() + "'")
	}
	return b.String()
}

func genericLimit(l query.ResultLimit) string {
	if !l.Defined() {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d, %d", l.Offset, l.Limit)
}

// TypeName implements the Builder representation hook.
func (g *Generic) TypeName(hint core.TypeHint) string { return g.Repr.TypeName(hint) }

// column is the rendered form of a cell: the name used in statements, the
// unqualified alias, the dialect type, the flag description, the bound row
// value, and the configured default.
type column struct {
	name   string
	alias  string
	typ    string
	descr  string
	val    core.Value
	defval core.Value
}

func (g *Generic) column(cell core.Cell) column {
	return column{
		name:   cell.Name(),
		alias:  cell.UnqualifiedName(),
		typ:    g.Repr.TypeName(cell.Hint()),
		descr:  g.Repr.Description(cell),
		val:    cell.Value(),
		defval: cell.Config(),
	}
}

func (g *Generic) columns(cells []core.Cell) []column {
	out := make([]column, len(cells))
	for i, cell := range cells {
		out[i] = g.column(cell)
	}
	return out
}

// fieldWithDescr renders "name TYPE [flags...]" for column definitions.
func fieldWithDescr(col column) string {
	return col.name + " " + col.typ + col.descr
}

// fieldWithCasts renders the projection entry used when copying table data:
// added columns materialize their default through a cast, renamed columns
// alias to their new name.
func (g *Generic) fieldWithCasts(col column) string {
	if !col.defval.IsEmpty() {
		return "CAST(" + col.defval.String() + " AS " + g.Repr.CastType(col.typ) + ") AS " + col.name
	}
	if col.alias != col.name {
		return col.name + " AS " + col.alias
	}
	return col.name
}

func (g *Generic) fieldsWithCasts(cols []column) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = g.fieldWithCasts(col)
	}
	return out
}

func fieldNames(cols []column) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = col.name
	}
	return out
}

func fieldShortNames(cols []column) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = col.alias
	}
	return out
}

// fillMissingDefaults pre-fills NULL as the default of destination columns
// that have no counterpart in the source and no configured default, and
// clears the default of columns the source has, so their data is copied.
// Used by CREATE … AS SELECT.
func fillMissingDefaults(srcCols []column, dstCols []column) {
	srcNames := make(map[string]struct{}, len(srcCols))
	for _, col := range srcCols {
		srcNames[col.name] = struct{}{}
	}
	for i := range dstCols {
		if _, ok := srcNames[dstCols[i].name]; ok {
			dstCols[i].defval = core.EmptyValue()
		} else if dstCols[i].defval.IsEmpty() {
			dstCols[i].defval = core.NullValue()
		}
	}
}

// whereTokens renders the WHERE clause when a condition is specified.
func whereTokens(c query.Condition) []query.Token {
	if !c.HasValue() {
		return nil
	}
	tokens := []query.Token{query.Text(" WHERE ")}
	return append(tokens, c.Tokens()...)
}

// joinTokens renders the enumerated JOIN … ON clauses in construction order.
func joinTokens(joins []query.Join) []query.Token {
	var tokens []query.Token
	for _, j := range joins {
		tokens = append(tokens, query.Text(" JOIN "+j.Table+" ON "))
		tokens = append(tokens, j.On.Tokens()...)
	}
	return tokens
}

func orderByClause(orderBys []query.OrderBy) string {
	if len(orderBys) == 0 {
		return ""
	}
	terms := make([]string, len(orderBys))
	for i, o := range orderBys {
		terms[i] = o.Cell.Name() + " " + o.Order.String()
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

// constraintsClause renders the table-level constraints of a create.
func (g *Generic) constraintsClause(scheme *core.TableScheme) (string, error) {
	constraints := scheme.Constraints()
	if len(constraints) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(constraints))
	for _, c := range constraints {
		switch fk := c.(type) {
		case *core.ForeignKey:
			clause, err := g.foreignKeyClause(fk, scheme)
			if err != nil {
				return "", err
			}
			parts = append(parts, clause)
		default:
			return "", core.NewUsageError("unsupported constraint %T", c)
		}
	}
	return ", " + strings.Join(parts, ", "), nil
}

func (g *Generic) foreignKeyClause(fk *core.ForeignKey, scheme *core.TableScheme) (string, error) {
	own, err := scheme.Cell(fk.Column)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("FOREIGN KEY ( " + own.UnqualifiedName() + " ) REFERENCES ")
	b.WriteString(fk.Foreign.TableName() + " ( " + fk.Foreign.UnqualifiedName() + " )")
	for _, rule := range fk.Rules {
		b.WriteString(" " + rule.Trigger.String() + " " + rule.Action.String())
	}
	return b.String(), nil
}

// BuildCreate lowers a create. With a scheme source it emits
// CREATE TABLE IF NOT EXISTS name AS SELECT …, materializing defaults for
// columns absent in the source; otherwise it emits the column definitions and
// table constraints.
func (g *Generic) BuildCreate(q *query.CreateQuery) ([]query.Statement, error) {
	tokens := []query.Token{query.Text("CREATE TABLE IF NOT EXISTS " + q.Table())}
	if src := q.SchemeSource(); src != nil {
		cols := g.columns(q.Cells())
		srcCols := g.columns(src.Cells())
		fillMissingDefaults(srcCols, cols)
		fields := g.fieldsWithCasts(cols)
		tokens = append(tokens, query.Text(" AS SELECT "+strings.Join(fields, ", ")+" FROM "+src.Name()))
		tokens = append(tokens, whereTokens(q.Condition())...)
		tokens = append(tokens, query.Text(orderByClause(q.OrderBys())+";"))
		return []query.Statement{query.FromTokens(tokens)}, nil
	}
	cols := g.columns(q.Cells())
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = fieldWithDescr(col)
	}
	constraints, err := g.constraintsClause(q.Scheme())
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, query.Text("("+strings.Join(defs, ", ")+constraints+");"))
	return []query.Statement{query.FromTokens(tokens)}, nil
}

// BuildInsert lowers an insert; every value is emitted as a bound placeholder.
func (g *Generic) BuildInsert(q *query.InsertQuery) ([]query.Statement, error) {
	cols := g.columns(q.Cells())
	names := fieldShortNames(cols)
	tokens := []query.Token{query.Text("INSERT INTO " + q.Table() + " (" + strings.Join(names, ", ") + ") VALUES (")}
	for i, col := range cols {
		if i > 0 {
			tokens = append(tokens, query.Text(", "))
		}
		tokens = append(tokens, query.Bound(col.val))
	}
	tokens = append(tokens, query.Text(");"))
	return []query.Statement{query.FromTokens(tokens)}, nil
}

// BuildSelect lowers a select; an empty projection renders as "*".
func (g *Generic) BuildSelect(q *query.SelectQuery) ([]query.Statement, error) {
	fields := "*"
	if cells := q.Cells(); len(cells) > 0 {
		fields = strings.Join(fieldNames(g.columns(cells)), ", ")
	}
	tokens := []query.Token{query.Text("SELECT " + fields + " FROM " + q.Table())}
	tokens = append(tokens, joinTokens(q.Joins())...)
	tokens = append(tokens, whereTokens(q.Condition())...)
	tokens = append(tokens, query.Text(orderByClause(q.OrderBys())+g.Repr.Limit(q.Limits())+";"))
	return []query.Statement{query.FromTokens(tokens)}, nil
}

// BuildUpdate lowers an update. Updating zero columns is a usage error.
func (g *Generic) BuildUpdate(q *query.UpdateQuery) ([]query.Statement, error) {
	cols := g.columns(q.Cells())
	if len(cols) == 0 {
		return nil, core.NewUsageError("no columns to update")
	}
	tokens := []query.Token{query.Text("UPDATE " + q.Table() + " SET ")}
	for i, col := range cols {
		if i > 0 {
			tokens = append(tokens, query.Text(", "))
		}
		tokens = append(tokens, query.Text(col.alias+" = "), query.Bound(col.val))
	}
	tokens = append(tokens, whereTokens(q.Condition())...)
	tokens = append(tokens, query.Text(";"))
	return []query.Statement{query.FromTokens(tokens)}, nil
}

// BuildRemove lowers a delete.
func (g *Generic) BuildRemove(q *query.RemoveQuery) ([]query.Statement, error) {
	tokens := []query.Token{query.Text("DELETE FROM " + q.Table())}
	tokens = append(tokens, whereTokens(q.Condition())...)
	tokens = append(tokens, query.Text(";"))
	return []query.Statement{query.FromTokens(tokens)}, nil
}

// BuildAlter lowers each conversion step to its own ALTER TABLE statement,
// skipping no-ops.
func (g *Generic) BuildAlter(q *query.AlterQuery) ([]query.Statement, error) {
	var statements []query.Statement
	table := q.Table()
	for _, step := range q.Steps() {
		var clause string
		switch step.Kind {
		case core.DiffNoOp:
			continue
		case core.DiffRenameTable:
			clause = table + " RENAME TO " + step.Table
		case core.DiffAddColumn:
			clause = table + " ADD " + fieldWithDescr(g.column(step.Cell))
		case core.DiffDropColumn:
			clause = table + " DROP COLUMN " + step.Cell.UnqualifiedName()
		case core.DiffRenameColumn:
			clause = table + " RENAME COLUMN " + step.From.UnqualifiedName() + " TO " + step.To.UnqualifiedName()
		}
		statements = append(statements, query.NewStatement("ALTER TABLE "+clause+";"))
	}
	return statements, nil
}

// BuildDrop lowers a drop.
func (g *Generic) BuildDrop(q *query.DropQuery) ([]query.Statement, error) {
	return []query.Statement{query.NewStatement("DROP TABLE IF EXISTS " + q.Table() + ";")}, nil
}

// BuildBegin lowers a transaction begin.
func (g *Generic) BuildBegin() ([]query.Statement, error) {
	return []query.Statement{query.NewStatement("BEGIN TRANSACTION;")}, nil
}

// BuildCommit lowers a transaction commit.
func (g *Generic) BuildCommit() ([]query.Statement, error) {
	return []query.Statement{query.NewStatement("COMMIT;")}, nil
}

// BuildRollback lowers a transaction rollback.
func (g *Generic) BuildRollback() ([]query.Statement, error) {
	return []query.Statement{query.NewStatement("ROLLBACK;")}, nil
}
