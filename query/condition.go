package query

import "dbfacade/core"

// Condition is a sequence of tokens forming a boolean SQL expression, built
// by combining column references and values. String and other literal values
// are always emitted as bound placeholders, never interpolated into the SQL
// text.
//
// A failed lookup or serialization is carried inside the condition and
// surfaces when the owning query is lowered.
type Condition struct {
	tokens []Token
	err    error
}

// C builds a condition referring to a column.
func C(cell core.Cell) Condition {
	return Condition{tokens: []Token{Text(cell.Name())}}
}

// F builds a condition referring to a declared column of S's scheme,
// qualified with the table name.
func F[S any](column string) Condition {
	cell, err := core.FieldOf[S](column)
	if err != nil {
		return Condition{err: err}
	}
	return C(cell)
}

// Lit builds a condition out of a single bound value.
func Lit(v any) Condition {
	value, err := core.ValueOf(v)
	if err != nil {
		return Condition{err: err}
	}
	return Condition{tokens: []Token{Bound(value)}}
}

// List builds a parenthesized comma-separated list of conditions, the form
// the IN operator consumes.
func List(items ...Condition) Condition {
	if len(items) == 0 {
		return Condition{}
	}
	c := Condition{tokens: []Token{Text("(")}}
	for i, item := range items {
		if item.err != nil && c.err == nil {
			c.err = item.err
		}
		if i > 0 {
			c.tokens = append(c.tokens, Text(", "))
		}
		c.tokens = append(c.tokens, item.tokens...)
	}
	c.tokens = append(c.tokens, Text(")"))
	return c
}

// operand coerces a combinator argument: conditions pass through, cells
// become column references, everything else becomes a bound value.
func operand(v any) Condition {
	switch t := v.(type) {
	case Condition:
		return t
	case core.Cell:
		return C(t)
	}
	return Lit(v)
}

// combine builds "lhs op rhs", parenthesized unless told otherwise (the
// BETWEEN operator needs its inner AND bare).
func combine(op string, l, r Condition, parenthesized bool) Condition {
	c := Condition{}
	if l.err != nil {
		c.err = l.err
	} else if r.err != nil {
		c.err = r.err
	}
	if parenthesized {
		c.tokens = append(c.tokens, Text("("))
	}
	c.tokens = append(c.tokens, l.tokens...)
	c.tokens = append(c.tokens, Text(" "+op+" "))
	c.tokens = append(c.tokens, r.tokens...)
	if parenthesized {
		c.tokens = append(c.tokens, Text(")"))
	}
	return c
}

// HasValue reports whether the condition has been specified.
func (c Condition) HasValue() bool { return len(c.tokens) > 0 }

// Tokens returns the token stream of the expression.
func (c Condition) Tokens() []Token { return c.tokens }

// Err returns the first error captured while building the condition.
func (c Condition) Err() error { return c.err }

func (c Condition) EQ(v any) Condition  { return combine("=", c, operand(v), true) }
func (c Condition) NEQ(v any) Condition { return combine("<>", c, operand(v), true) }
func (c Condition) LT(v any) Condition  { return combine("<", c, operand(v), true) }
func (c Condition) GT(v any) Condition  { return combine(">", c, operand(v), true) }
func (c Condition) LTE(v any) Condition { return combine("<=", c, operand(v), true) }
func (c Condition) GTE(v any) Condition { return combine(">=", c, operand(v), true) }

func (c Condition) And(v any) Condition { return combine("AND", c, operand(v), true) }
func (c Condition) Or(v any) Condition  { return combine("OR", c, operand(v), true) }

// Between renders "(c BETWEEN lo AND hi)"; the inner AND carries no
// parentheses of its own.
func (c Condition) Between(lo, hi any) Condition {
	inner := combine("AND", operand(lo), operand(hi), false)
	return combine("BETWEEN", c, inner, true)
}

// Like renders "(c LIKE ?)" with the pattern bound.
func (c Condition) Like(pattern string) Condition {
	return combine("LIKE", c, Lit(pattern), true)
}

// In renders "(c IN (v1, v2, …))" with every element bound.
func (c Condition) In(vs ...any) Condition {
	items := make([]Condition, len(vs))
	for i, v := range vs {
		items[i] = operand(v)
	}
	return combine("IN", c, List(items...), true)
}
