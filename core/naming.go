package core

import (
	"github.com/go-openapi/inflect"
)

// TableNameFor derives the conventional table name for a record type name:
// pluralized snake_case, e.g. "OrderItem" -> "order_items".
func TableNameFor(typeName string) string {
	return inflect.Underscore(inflect.Pluralize(typeName))
}

// SchemeNameFor derives the conventional table name for record type S.
func SchemeNameFor[S any]() string {
	return TableNameFor(recordType[S]().Name())
}
