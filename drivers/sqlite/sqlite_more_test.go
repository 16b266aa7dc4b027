package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbfacade"
	"dbfacade/core"
	"dbfacade/query"
)

type Attachment struct {
	ID   uuid.UUID
	Body []byte
}

type ArchivedStudent struct {
	ID   int64
	Name string
	Note *string
}

func init() {
	core.RegisterScheme[Attachment](func() (*core.TableScheme, error) {
		return core.NewScheme("attachments", []core.Cell{
			core.Column("id", func(a *Attachment) *uuid.UUID { return &a.ID }, core.PrimaryKey),
			core.Column("body", func(a *Attachment) *[]byte { return &a.Body }, core.None),
		})
	})
	core.RegisterScheme[ArchivedStudent](func() (*core.TableScheme, error) {
		return core.NewScheme("archived_students", []core.Cell{
			core.Column("id", func(a *ArchivedStudent) *int64 { return &a.ID }, core.None),
			core.Column("name", func(a *ArchivedStudent) *string { return &a.Name }, core.None),
			core.ColumnWith("note", func(a *ArchivedStudent) **string { return &a.Note },
				core.NullableConverter(core.StringConverter[string]()), core.None),
		})
	})
}

func TestBlobAndUUIDRoundTrip(t *testing.T) {
	f := openFacade(t)
	require.NoError(t, f.Execute(query.CreateTable[Attachment]()))

	rec := Attachment{ID: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), Body: []byte("raw\x00bytes")}
	require.NoError(t, f.Execute(query.Insert(&rec)))

	got, err := dbfacade.Receive[Attachment](f, query.Select[Attachment]())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, rec.Body, got[0].Body)
}

func TestConditionOperatorsEndToEnd(t *testing.T) {
	f := openFacade(t)
	seedStudents(t, f, 5)

	between, err := dbfacade.Receive[Student](f, query.Select[Student]().
		Where(query.F[Student]("id").Between(2, 4)))
	require.NoError(t, err)
	assert.Len(t, between, 3)

	like, err := dbfacade.Receive[Student](f, query.Select[Student]().
		Where(query.F[Student]("name").Like("name%")))
	require.NoError(t, err)
	assert.Len(t, like, 5)

	in, err := dbfacade.Receive[Student](f, query.Select[Student]().
		Where(query.F[Student]("id").In(1, 5, 99)))
	require.NoError(t, err)
	assert.Len(t, in, 2)

	combo, err := dbfacade.Receive[Student](f, query.Select[Student]().
		Where(query.F[Student]("id").GT(1).And(query.F[Student]("id").LT(5)).
			Or(query.F[Student]("name").EQ("name1"))))
	require.NoError(t, err)
	assert.Len(t, combo, 4)

	neq, err := dbfacade.Receive[Student](f, query.Select[Student]().
		Where(query.F[Student]("id").NEQ(3)))
	require.NoError(t, err)
	assert.Len(t, neq, 4)
}

func TestMultiTermOrderBy(t *testing.T) {
	f := openFacade(t)
	require.NoError(t, f.Execute(query.CreateTable[SelectRow]()))
	for _, r := range []SelectRow{
		{ID: 1, Name: "b"}, {ID: 2, Name: "a"}, {ID: 3, Name: "a"},
	} {
		rec := r
		require.NoError(t, f.Execute(query.Insert(&rec)))
	}

	rows, err := dbfacade.Receive[SelectRow](f, query.Select[SelectRow]().
		OrderBy(query.Asc(core.MustField[SelectRow]("name"))).
		OrderBy(query.Desc(core.MustField[SelectRow]("id"))))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(3), rows[0].ID)
	assert.Equal(t, int64(2), rows[1].ID)
	assert.Equal(t, int64(1), rows[2].ID)
}

func TestCreateTableAsSelect(t *testing.T) {
	f := openFacade(t)
	seedStudents(t, f, 3)

	require.NoError(t, f.Execute(query.CreateTableAs[ArchivedStudent, Student]().
		Where(query.F[Student]("id").LTE(2)).
		OrderBy(query.Asc(core.MustField[Student]("id")))))

	rows, err := dbfacade.Receive[ArchivedStudent](f, query.Select[ArchivedStudent]())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "name1", rows[0].Name)
	assert.Nil(t, rows[0].Note)
}

func TestUpdateFieldsSubset(t *testing.T) {
	f := openFacade(t)
	seedStudents(t, f, 2)

	patch := Student{Name: "patched"}
	require.NoError(t, f.Execute(
		query.UpdateFields(&patch, core.MustField[Student]("name")).
			Where(query.F[Student]("id").EQ(2))))

	rows, err := dbfacade.Receive[Student](f, query.Select[Student]().
		OrderBy(query.Asc(core.MustField[Student]("id"))))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "name1", rows[0].Name)
	assert.Equal(t, "patched", rows[1].Name)
}

func TestReadAfterCommitAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")

	writer, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = writer.Close() }()
	wf := dbfacade.New(writer)

	require.NoError(t, wf.Execute(query.CreateTable[SelectRow]()))
	err = wf.Transaction(func(tx *dbfacade.Facade) (bool, error) {
		rec := SelectRow{ID: 1, Name: "committed"}
		return true, tx.Execute(query.Insert(&rec))
	})
	require.NoError(t, err)

	reader, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()
	rf := dbfacade.New(reader)

	rows, err := dbfacade.Receive[SelectRow](rf, query.Select[SelectRow]())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "committed", rows[0].Name)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestDirectTransactionQueries(t *testing.T) {
	f := openFacade(t)
	require.NoError(t, f.Execute(query.CreateTable[SelectRow]()))

	require.NoError(t, f.Execute(query.Begin()))
	rec := SelectRow{ID: 1, Name: "x"}
	require.NoError(t, f.Execute(query.Insert(&rec)))
	require.NoError(t, f.Execute(query.Rollback()))

	rows, err := dbfacade.Receive[SelectRow](f, query.Select[SelectRow]())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEmptyProjectionSelectsEverything(t *testing.T) {
	f := openFacade(t)
	seedStudents(t, f, 1)

	rows, err := dbfacade.Receive[Student](f, query.Select[Student]())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, "name1", rows[0].Name)
	assert.False(t, rows[0].Time.IsZero())
}
