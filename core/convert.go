package core

import (
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Converter describes how a Go field type travels to and from the database.
// From produces the bound Value for a field; To reconstructs the field from
// the raw cell a driver reports. The raw cell is nil only for SQL NULL, which
// non-nullable converters must reject.
//
// Contract: To(From(x)) == x for every representable non-null x, and for a
// nullable converter From(nil) == Null and To(nil) == nil.
type Converter[T any] struct {
	Nullable bool
	Hint     TypeHint
	From     func(T) (Value, error)
	To       func(raw *string) (T, error)
}

func requireRaw(raw *string) (string, error) {
	if raw == nil {
		return "", NewConversionError("unexpected NULL for a non-nullable column")
	}
	return *raw, nil
}

// IntegerConverter serializes any integer kind as a 64-bit signed integer.
func IntegerConverter[T ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64]() Converter[T] {
	var zero T
	return Converter[T]{
		Hint: TypeHint{Type: HintInteger, Size: int(reflect.TypeOf(zero).Size())},
		From: func(v T) (Value, error) {
			return IntegerValue(reflect.ValueOf(v).Convert(reflect.TypeOf(int64(0))).Int()), nil
		},
		To: func(raw *string) (T, error) {
			s, err := requireRaw(raw)
			if err != nil {
				return zero, err
			}
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return zero, NewConversionError("cannot parse integer %q", s)
			}
			return T(n), nil
		},
	}
}

// StringConverter serializes any string kind as TEXT.
func StringConverter[T ~string]() Converter[T] {
	return Converter[T]{
		Hint: TypeHint{Type: HintString},
		From: func(v T) (Value, error) { return StringValue(string(v)), nil },
		To: func(raw *string) (T, error) {
			s, err := requireRaw(raw)
			if err != nil {
				return "", err
			}
			return T(s), nil
		},
	}
}

// BytesConverter serializes byte slices as blobs.
func BytesConverter() Converter[[]byte] {
	return Converter[[]byte]{
		Hint: TypeHint{Type: HintBinary},
		From: func(v []byte) (Value, error) { return BlobValue(v), nil },
		To: func(raw *string) ([]byte, error) {
			s, err := requireRaw(raw)
			if err != nil {
				return nil, err
			}
			return []byte(s), nil
		},
	}
}

// DateTimeConverter serializes time.Time as the on-wire ISO-8601 form.
func DateTimeConverter() Converter[time.Time] {
	return Converter[time.Time]{
		Hint: TypeHint{Type: HintDateTime},
		From: func(v time.Time) (Value, error) { return DateTimeValue(FormatDateTime(v)), nil },
		To: func(raw *string) (time.Time, error) {
			s, err := requireRaw(raw)
			if err != nil {
				return time.Time{}, err
			}
			return ParseDateTime(s)
		},
	}
}

// UUIDConverter serializes github.com/google/uuid values as TEXT.
func UUIDConverter() Converter[uuid.UUID] {
	return Converter[uuid.UUID]{
		Hint: TypeHint{Type: HintString, Size: 36},
		From: func(v uuid.UUID) (Value, error) { return StringValue(v.String()), nil },
		To: func(raw *string) (uuid.UUID, error) {
			s, err := requireRaw(raw)
			if err != nil {
				return uuid.Nil, err
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return uuid.Nil, &ConversionError{Msg: "cannot parse uuid " + strconv.Quote(s), Err: err}
			}
			return id, nil
		},
	}
}

// NullableConverter lifts a converter over *T. An absent value serializes to
// SQL NULL and a NULL cell deserializes to nil.
func NullableConverter[T any](inner Converter[T]) Converter[*T] {
	return Converter[*T]{
		Nullable: true,
		Hint:     inner.Hint,
		From: func(v *T) (Value, error) {
			if v == nil {
				return NullValue(), nil
			}
			return inner.From(*v)
		},
		To: func(raw *string) (*T, error) {
			if raw == nil {
				return nil, nil
			}
			v, err := inner.To(raw)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	}
}

// converterRegistry holds user-registered converters keyed by field type, so
// applications can teach the library about their own types without touching
// the cell constructors at every use site.
var converterRegistry sync.Map // reflect.Type -> any (Converter[T])

// RegisterConverter installs c as the default converter for T. It is looked
// up before the built-in kind inference.
func RegisterConverter[T any](c Converter[T]) {
	converterRegistry.Store(reflect.TypeOf((*T)(nil)).Elem(), c)
}

// StandardConverter resolves the default converter for T: a registered custom
// converter first, then time.Time, []byte, uuid.UUID, then integer and string
// kinds. Types outside that set need an explicit converter.
func StandardConverter[T any]() (Converter[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if c, ok := converterRegistry.Load(rt); ok {
		return c.(Converter[T]), nil
	}
	var zero T
	switch any(zero).(type) {
	case time.Time:
		return anyConverter[T](DateTimeConverter())
	case []byte:
		return anyConverter[T](BytesConverter())
	case uuid.UUID:
		return anyConverter[T](UUIDConverter())
	}
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflectIntegerConverter[T](rt), nil
	case reflect.String:
		return reflectStringConverter[T](rt), nil
	case reflect.Pointer:
		return Converter[T]{}, NewConversionError(
			"no standard converter for %s: wrap the element converter with NullableConverter", rt)
	}
	return Converter[T]{}, NewConversionError("no standard converter for type %s", rt)
}

// anyConverter rebinds Converter[U] as Converter[T] when T and U are the same
// dynamic type.
func anyConverter[T, U any](inner Converter[U]) (Converter[T], error) {
	return Converter[T]{
		Nullable: inner.Nullable,
		Hint:     inner.Hint,
		From: func(v T) (Value, error) {
			return inner.From(any(v).(U))
		},
		To: func(raw *string) (T, error) {
			v, err := inner.To(raw)
			if err != nil {
				var zero T
				return zero, err
			}
			return any(v).(T), nil
		},
	}, nil
}

func reflectIntegerConverter[T any](rt reflect.Type) Converter[T] {
	signed := rt.Kind() >= reflect.Int && rt.Kind() <= reflect.Int64
	return Converter[T]{
		Hint: TypeHint{Type: HintInteger, Size: int(rt.Size())},
		From: func(v T) (Value, error) {
			rv := reflect.ValueOf(v)
			if signed {
				return IntegerValue(rv.Int()), nil
			}
			return IntegerValue(int64(rv.Uint())), nil
		},
		To: func(raw *string) (T, error) {
			var zero T
			s, err := requireRaw(raw)
			if err != nil {
				return zero, err
			}
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return zero, NewConversionError("cannot parse integer %q", s)
			}
			out := reflect.New(rt).Elem()
			if signed {
				out.SetInt(n)
			} else {
				out.SetUint(uint64(n))
			}
			return out.Interface().(T), nil
		},
	}
}

func reflectStringConverter[T any](rt reflect.Type) Converter[T] {
	return Converter[T]{
		Hint: TypeHint{Type: HintString},
		From: func(v T) (Value, error) {
			return StringValue(reflect.ValueOf(v).String()), nil
		},
		To: func(raw *string) (T, error) {
			var zero T
			s, err := requireRaw(raw)
			if err != nil {
				return zero, err
			}
			out := reflect.New(rt).Elem()
			out.SetString(s)
			return out.Interface().(T), nil
		},
	}
}

// Valuer lets arbitrary application types serialize themselves when used
// directly inside conditions.
type Valuer interface {
	SqlValue() (Value, error)
}

// ValueOf converts a plain Go value into a bound Value the way condition
// literals are serialized: integers, strings, byte slices, time.Time, nil,
// and anything implementing Valuer.
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case Valuer:
		return t.SqlValue()
	case string:
		return StringValue(t), nil
	case []byte:
		return BlobValue(t), nil
	case time.Time:
		return DateTimeValue(FormatDateTime(t)), nil
	case bool:
		if t {
			return IntegerValue(1), nil
		}
		return IntegerValue(0), nil
	case uuid.UUID:
		return StringValue(t.String()), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntegerValue(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return IntegerValue(int64(rv.Uint())), nil
	case reflect.String:
		return StringValue(rv.String()), nil
	}
	return Value{}, NewConversionError("cannot serialize value of type %T", v)
}
