package query

// DropQuery drops a table.
type DropQuery struct {
	base
}

// Drop forms a DROP TABLE query for S's table.
func Drop[S any]() *DropQuery {
	return &DropQuery{base: newBase[S](KindDrop)}
}
