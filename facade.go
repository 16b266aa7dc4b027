package dbfacade

import (
	"context"

	"dbfacade/core"
	"dbfacade/query"
)

// Facade is the user-facing handle combining a connection with convenience
// methods for executing queries, receiving typed results, transactions, and
// scheme verification.
type Facade struct {
	conn Connection
	log  Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithLogger attaches a logger; *slog.Logger satisfies the interface.
func WithLogger(log Logger) Option {
	return func(f *Facade) { f.log = log }
}

// New wraps a connection. The connection may be shared by several facades;
// it serializes driver access itself.
func New(conn Connection, opts ...Option) *Facade {
	f := &Facade{conn: conn, log: noopLogger{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Connection returns the underlying connection.
func (f *Facade) Connection() Connection { return f.conn }

// Close closes the underlying connection.
func (f *Facade) Close() error { return f.conn.Close() }

// Execute runs the given queries in order, discarding result rows. The first
// failure stops execution and propagates.
func (f *Facade) Execute(qs ...query.Query) error {
	for _, q := range qs {
		if err := f.conn.Perform(q, nil); err != nil {
			f.log.ErrorContext(context.Background(), "query failed", "error", err)
			return err
		}
	}
	return nil
}

// Transaction runs fn inside a transaction on this facade. A true return
// commits, false rolls back, and an error from fn rolls back before
// propagating. Statements never auto-rollback on their own failure; the
// outcome is fn's alone. Transactions do not nest.
func (f *Facade) Transaction(fn func(*Facade) (bool, error)) error {
	if err := f.Execute(query.Begin()); err != nil {
		return err
	}
	commit, err := fn(f)
	if err != nil {
		if rbErr := f.Execute(query.Rollback()); rbErr != nil {
			f.log.WarnContext(context.Background(), "rollback failed", "error", rbErr)
		}
		return err
	}
	if commit {
		return f.Execute(query.Commit())
	}
	return f.Execute(query.Rollback())
}

// ExecuteInTransaction runs the queries inside one transaction and commits.
func (f *Facade) ExecuteInTransaction(qs ...query.Query) error {
	return f.Transaction(func(tx *Facade) (bool, error) {
		if err := tx.Execute(qs...); err != nil {
			return false, err
		}
		return true, nil
	})
}

// VerifyScheme checks that the live table matches record type S's declared
// scheme.
func VerifyScheme[S any](f *Facade) error {
	scheme, err := core.SchemeOf[S]()
	if err != nil {
		return err
	}
	return f.conn.VerifyScheme(scheme)
}

// decodeRow materializes one result row into the targets: each column is
// looked up in the schemes in order and deserialized into the matching
// target. A column no scheme declares is a DecodeError.
func decodeRow(schemes []*core.TableScheme, targets []any, header map[string]int, row []*string) error {
	for name, idx := range header {
		matched := false
		for i, scheme := range schemes {
			cell, ok := scheme.FindCell(name)
			if !ok {
				continue
			}
			if err := cell.Deserialize(row[idx], targets[i]); err != nil {
				return err
			}
			matched = true
			break
		}
		if !matched {
			return core.NewDecodeError("unknown cell: %s", name)
		}
	}
	return nil
}

// Receive runs a select and materializes every row into a record of type S.
// Only the projected fields carry data; the rest keep their zero values.
func Receive[S any](f *Facade, q query.Query) ([]S, error) {
	scheme, err := core.SchemeOf[S]()
	if err != nil {
		return nil, err
	}
	var out []S
	err = f.conn.Perform(q, func(header map[string]int, row []*string) error {
		var single S
		if err := decodeRow([]*core.TableScheme{scheme}, []any{&single}, header, row); err != nil {
			return err
		}
		out = append(out, single)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Pair is a two-record join result row.
type Pair[A, B any] struct {
	First  A
	Second B
}

// ReceivePairs materializes a two-table join: each column lands in the first
// scheme that declares it, tried in type order.
func ReceivePairs[A, B any](f *Facade, q query.Query) ([]Pair[A, B], error) {
	schemeA, err := core.SchemeOf[A]()
	if err != nil {
		return nil, err
	}
	schemeB, err := core.SchemeOf[B]()
	if err != nil {
		return nil, err
	}
	var out []Pair[A, B]
	err = f.conn.Perform(q, func(header map[string]int, row []*string) error {
		var p Pair[A, B]
		if err := decodeRow([]*core.TableScheme{schemeA, schemeB}, []any{&p.First, &p.Second}, header, row); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Triple is a three-record join result row.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// ReceiveTriples materializes a three-table join.
func ReceiveTriples[A, B, C any](f *Facade, q query.Query) ([]Triple[A, B, C], error) {
	schemeA, err := core.SchemeOf[A]()
	if err != nil {
		return nil, err
	}
	schemeB, err := core.SchemeOf[B]()
	if err != nil {
		return nil, err
	}
	schemeC, err := core.SchemeOf[C]()
	if err != nil {
		return nil, err
	}
	var out []Triple[A, B, C]
	err = f.conn.Perform(q, func(header map[string]int, row []*string) error {
		var t Triple[A, B, C]
		schemes := []*core.TableScheme{schemeA, schemeB, schemeC}
		if err := decodeRow(schemes, []any{&t.First, &t.Second, &t.Third}, header, row); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
