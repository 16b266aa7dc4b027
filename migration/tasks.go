// Package migration provides typed tasks a version-keyed migration manager
// can run: creating, altering, and deleting the table of a record type.
// The manager itself — tracking the installed version and ordering task
// execution — lives outside this library.
package migration

import (
	"fmt"

	"dbfacade"
	"dbfacade/core"
	"dbfacade/query"
)

// Task couples a target schema version with the work converting a database
// to it.
type Task struct {
	Version     uint64
	Description string
	run         func(*dbfacade.Facade) error
}

// Run executes the task against the facade. Driver failures propagate.
func (t Task) Run(f *dbfacade.Facade) error {
	if t.run == nil {
		return core.NewUsageError("task %q has no body", t.Description)
	}
	return t.run(f)
}

// RunLossy executes the task and reports only success or failure, for
// managers that cannot carry an error. Prefer Run; the error is lost here.
func (t Task) RunLossy(f *dbfacade.Facade) bool {
	return t.Run(f) == nil
}

func describe[S any](action string) string {
	if scheme, err := core.SchemeOf[S](); err == nil {
		return fmt.Sprintf("%s table: %s", action, scheme.Name())
	}
	return fmt.Sprintf("%s table: %T", action, *new(S))
}

// CreateTable builds a task creating record type S's table.
func CreateTable[S any](version uint64) Task {
	return Task{
		Version:     version,
		Description: describe[S]("create"),
		run: func(f *dbfacade.Facade) error {
			return f.Execute(query.CreateTable[S]())
		},
	}
}

// DeleteTable builds a task dropping record type S's table.
func DeleteTable[S any](version uint64) Task {
	return Task{
		Version:     version,
		Description: describe[S]("delete"),
		run: func(f *dbfacade.Facade) error {
			return f.Execute(query.Drop[S]())
		},
	}
}

// Rename marks a column pair that changed name between two schema versions,
// so the alter preserves its data instead of dropping and re-adding it.
type Rename struct {
	From core.Cell
	To   core.Cell
}

// AlterTable builds a task converting Old's table layout into New's,
// applying the given column renames.
func AlterTable[Old, New any](version uint64, renames ...Rename) Task {
	return Task{
		Version:     version,
		Description: describe[Old]("change columns of the"),
		run: func(f *dbfacade.Facade) error {
			q := query.Alter[Old, New]()
			for _, r := range renames {
				q.RenamingCell(r.From, r.To)
			}
			return f.Execute(q)
		},
	}
}
