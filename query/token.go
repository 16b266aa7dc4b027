// Package query provides the tokenized statement model and the composable
// query objects the dialect builders lower to SQL.
package query

import (
	"strings"

	"dbfacade/core"
)

// Token is one element of a statement: either literal SQL text or a bound
// value that composes to a placeholder.
type Token struct {
	text    string
	value   core.Value
	isValue bool
}

// Text builds a literal text token.
func Text(s string) Token { return Token{text: s} }

// Bound builds a bound value token.
func Bound(v core.Value) Token { return Token{value: v, isValue: true} }

// IsValue reports whether the token is a bound value.
func (t Token) IsValue() bool { return t.isValue }

// Literal returns the literal text of a text token.
func (t Token) Literal() string { return t.text }

// Value returns the bound value of a value token.
func (t Token) Value() core.Value { return t.value }

// BindingParameters extracts the bound values of a token stream in order.
func BindingParameters(tokens []Token) []core.Value {
	var out []core.Value
	for _, t := range tokens {
		if t.isValue {
			out = append(out, t.value)
		}
	}
	return out
}

// Statement is an ordered token vector ready to be composed into dialect SQL
// with positional placeholders.
type Statement struct {
	tokens []Token
}

// NewStatement builds a statement out of plain SQL text.
func NewStatement(text string) Statement {
	return Statement{tokens: []Token{Text(text)}}
}

// FromTokens builds a statement out of a token stream.
func FromTokens(tokens []Token) Statement {
	return Statement{tokens: tokens}
}

// Compose renders the statement, replacing every bound value with the
// placeholder text.
func (s Statement) Compose(placeholder string) string {
	var b strings.Builder
	for _, t := range s.tokens {
		if t.isValue {
			b.WriteString(placeholder)
		} else {
			b.WriteString(t.text)
		}
	}
	return b.String()
}

// String renders the statement with the default "?" placeholder.
func (s Statement) String() string { return s.Compose("?") }

// Parameters returns the bound values in left-to-right order.
func (s Statement) Parameters() []core.Value {
	return BindingParameters(s.tokens)
}
