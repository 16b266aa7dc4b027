package core

import "fmt"

// FacadeError is implemented by every error kind in this module, so callers
// can treat the taxonomy as one family while still matching concrete kinds
// with errors.As.
type FacadeError interface {
	error
	facadeError()
}

// SchemaError reports a structural violation detected while constructing a
// table scheme, or a lookup of a column that was never declared.
type SchemaError struct {
	Msg string
}

func NewSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{Msg: fmt.Sprintf(format, args...)}
}

func (e *SchemaError) Error() string { return e.Msg }
func (e *SchemaError) facadeError() {}

// SchemeMismatchError reports a disagreement between a declared scheme and the
// live table found by verification. Column and Property name what differed.
type SchemeMismatchError struct {
	Column   string
	Property string
	Msg      string
}

func NewSchemeMismatchError(column, property, format string, args ...any) *SchemeMismatchError {
	return &SchemeMismatchError{Column: column, Property: property, Msg: fmt.Sprintf(format, args...)}
}

func (e *SchemeMismatchError) Error() string { return e.Msg }
func (e *SchemeMismatchError) facadeError() {}

// DecodeError reports a failure to materialize a record out of a result row.
type DecodeError struct {
	Msg string
}

func NewDecodeError(format string, args ...any) *DecodeError {
	return &DecodeError{Msg: fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Error() string { return e.Msg }
func (e *DecodeError) facadeError() {}

// ConversionError reports a type converter rejecting its input.
type ConversionError struct {
	Msg string
	Err error
}

func NewConversionError(format string, args ...any) *ConversionError {
	return &ConversionError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConversionError) Unwrap() error { return e.Err }
func (e *ConversionError) facadeError() {}

// DriverError is raised by a backend for preparation, binding, or execution
// failures. Query carries the originating SQL when available.
type DriverError struct {
	Msg   string
	Query string
	Err   error
}

func NewDriverError(err error, query string) *DriverError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &DriverError{Msg: msg, Query: query, Err: err}
}

func (e *DriverError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("%s (query: %s)", e.Msg, e.Query)
	}
	return e.Msg
}

func (e *DriverError) Unwrap() error { return e.Err }
func (e *DriverError) facadeError() {}

// UsageError reports API misuse, like a zero-column update or renaming a
// column that is not part of a diff.
type UsageError struct {
	Msg string
}

func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string { return e.Msg }
func (e *UsageError) facadeError() {}
