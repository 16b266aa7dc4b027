// Package core contains the single source of truth for the correspondence
// between Go record types and database tables. It provides the tagged value
// type crossing the driver boundary, the type converter machinery, column
// descriptors, table schemes, and the scheme diff engine.
package core

import "strconv"

// Subtype tags which payload slot of a Value is valid.
type Subtype int

const (
	// Empty denotes "no value supplied". It is distinct from SQL NULL and is
	// the zero value, so an unset Value is Empty.
	Empty Subtype = iota
	Null
	Integer
	String
	DateTime
	Blob
)

// Value is the tagged value that crosses the driver boundary: SQL NULL, a
// 64-bit signed integer, a UTF-8 string, a datetime (held in its ISO-8601
// string form), a blob, or nothing at all.
//
// Values are comparable; equality is structural.
type Value struct {
	sub Subtype
	str string
	num int64
}

func NullValue() Value           { return Value{sub: Null} }
func IntegerValue(v int64) Value { return Value{sub: Integer, num: v} }
func StringValue(v string) Value { return Value{sub: String, str: v} }
func BlobValue(v []byte) Value   { return Value{sub: Blob, str: string(v)} }
func EmptyValue() Value          { return Value{} }

// DateTimeValue wraps an already formatted ISO-8601 string. Use the DateTime
// converter to produce one from a time.Time.
func DateTimeValue(iso string) Value { return Value{sub: DateTime, str: iso} }

// Subtype returns the type tag.
func (v Value) Subtype() Subtype { return v.sub }

// Int returns the integer payload. Valid only when Subtype is Integer.
func (v Value) Int() int64 { return v.num }

// Str returns the string payload. Valid for String, DateTime and Blob values.
func (v Value) Str() string { return v.str }

// Bytes returns the blob payload.
func (v Value) Bytes() []byte { return []byte(v.str) }

// IsEmpty reports whether no value was supplied.
func (v Value) IsEmpty() bool { return v.sub == Empty }

// String renders the value the way it appears in DEFAULT clauses and
// verification output: "NULL" for SQL NULL, the decimal form for integers,
// and the raw string otherwise. Empty renders as "".
func (v Value) String() string {
	switch v.sub {
	case Null:
		return "NULL"
	case Integer:
		return strconv.FormatInt(v.num, 10)
	case String, DateTime, Blob:
		return v.str
	}
	return ""
}

// InnerType is the portable column type family a dialect maps to a concrete
// column declaration.
type InnerType int

const (
	HintInteger InnerType = iota
	HintBinary
	HintString
	HintDateTime
)

// TypeHint carries the portable type family of a column plus an optional
// byte-size hint.
type TypeHint struct {
	Type InnerType
	Size int
}
