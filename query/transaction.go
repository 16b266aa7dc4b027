package query

// TxQuery is a transaction control query. Prefer Facade.Transaction over
// issuing these directly.
type TxQuery struct {
	base
}

// Begin forms a query that begins a transaction.
func Begin() *TxQuery { return &TxQuery{base: base{kind: KindBegin}} }

// Commit forms a query that commits the current transaction.
func Commit() *TxQuery { return &TxQuery{base: base{kind: KindCommit}} }

// Rollback forms a query that rolls back the current transaction.
func Rollback() *TxQuery { return &TxQuery{base: base{kind: KindRollback}} }
