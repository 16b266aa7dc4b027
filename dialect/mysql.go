package dialect

import (
	"strings"

	"dbfacade/core"
	"dbfacade/query"
)

func init() {
	Register(MySQL, func() Builder { return NewMySQL() })
}

// MySQLBuilder adjusts the generic lowering for MySQL: AUTO_INCREMENT
// spelling, unquoted DEFAULT values, INTEGER casts as SIGNED, multi-step
// ALTERs collapsed into one statement, and transactions opened with
// START TRANSACTION (the server rejects BEGIN through the prepared-statement
// protocol).
type MySQLBuilder struct {
	*Generic
}

// NewMySQL returns the MySQL dialect builder.
func NewMySQL() *MySQLBuilder {
	g := NewGeneric()
	g.Repr.CastType = mysqlCastType
	g.Repr.Description = mysqlDescription
	return &MySQLBuilder{Generic: g}
}

func mysqlCastType(typeName string) string {
	if typeName == "INTEGER" {
		return "SIGNED"
	}
	return typeName
}

func mysqlDescription(cell core.Cell) string {
	var b strings.Builder
	if cell.HasFlag(core.PrimaryKey) {
		b.WriteString(" PRIMARY KEY")
	}
	if cell.HasFlag(core.Unique) {
		b.WriteString(" UNIQUE")
	}
	if cell.HasFlag(core.AutoIncrement) {
		b.WriteString(" AUTO_INCREMENT")
	}
	if !cell.IsNullable() {
		b.WriteString(" NOT NULL")
	}
	if cell.HasFlag(core.Default) {
		b.WriteString(" DEFAULT " + cell.Config().String())
	}
	return b.String()
}

// BuildAlter collapses every conversion step into a single ALTER TABLE with
// comma-separated clauses.
func (b *MySQLBuilder) BuildAlter(q *query.AlterQuery) ([]query.Statement, error) {
	var clauses []string
	for _, step := range q.Steps() {
		switch step.Kind {
		case core.DiffNoOp:
			continue
		case core.DiffRenameTable:
			clauses = append(clauses, " RENAME TO "+step.Table)
		case core.DiffAddColumn:
			clauses = append(clauses, " ADD "+fieldWithDescr(b.column(step.Cell)))
		case core.DiffDropColumn:
			clauses = append(clauses, " DROP "+step.Cell.UnqualifiedName())
		case core.DiffRenameColumn:
			clauses = append(clauses, " RENAME COLUMN "+step.From.UnqualifiedName()+" TO "+step.To.UnqualifiedName())
		}
	}
	if len(clauses) == 0 {
		return nil, nil
	}
	return []query.Statement{
		query.NewStatement("ALTER TABLE " + q.Table() + strings.Join(clauses, ",") + ";"),
	}, nil
}

// BuildBegin emits START TRANSACTION, which the driver must run as a direct
// text query.
func (b *MySQLBuilder) BuildBegin() ([]query.Statement, error) {
	return []query.Statement{query.NewStatement("START TRANSACTION;")}, nil
}
