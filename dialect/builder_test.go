package dialect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbfacade/core"
	"dbfacade/query"
)

type student struct {
	ID   int64
	Name string
	Time time.Time
}

type newStudent struct {
	ID       int64
	FullName string
	Major    *string
	Grade    int64
	Time     time.Time
}

type trimmedStudent struct {
	ID   int64
	Name string
}

type parent struct {
	ID int64
}

type child struct {
	ID       int64
	ParentID int64
}

func init() {
	core.RegisterScheme[student](func() (*core.TableScheme, error) {
		return core.NewScheme("students", []core.Cell{
			core.Column("id", func(s *student) *int64 { return &s.ID }, core.PrimaryKey),
			core.Column("name", func(s *student) *string { return &s.Name }, core.None),
			core.Column("time", func(s *student) *time.Time { return &s.Time }, core.None),
		})
	})
	core.RegisterScheme[newStudent](func() (*core.TableScheme, error) {
		return core.NewScheme("students", []core.Cell{
			core.Column("id", func(s *newStudent) *int64 { return &s.ID }, core.PrimaryKey),
			core.Column("full_name", func(s *newStudent) *string { return &s.FullName }, core.None),
			core.ColumnWith("major", func(s *newStudent) **string { return &s.Major },
				core.NullableConverter(core.StringConverter[string]()), core.None),
			core.ColumnDefault("grade", func(s *newStudent) *int64 { return &s.Grade }, core.None, int64(50)),
			core.Column("time", func(s *newStudent) *time.Time { return &s.Time }, core.None),
		})
	})
	core.RegisterScheme[trimmedStudent](func() (*core.TableScheme, error) {
		return core.NewScheme("old_students", []core.Cell{
			core.Column("id", func(s *trimmedStudent) *int64 { return &s.ID }, core.PrimaryKey),
			core.Column("name", func(s *trimmedStudent) *string { return &s.Name }, core.None),
		})
	})
	core.RegisterScheme[parent](func() (*core.TableScheme, error) {
		return core.NewScheme("parents", []core.Cell{
			core.Column("id", func(p *parent) *int64 { return &p.ID }, core.PrimaryKey),
		})
	})
	core.RegisterScheme[child](func() (*core.TableScheme, error) {
		return core.NewScheme("children", []core.Cell{
			core.Column("id", func(c *child) *int64 { return &c.ID }, core.PrimaryKey),
			core.Column("parent_id", func(c *child) *int64 { return &c.ParentID }, core.None),
		}, core.NewForeignKey[parent]("parent_id", "id", core.OnDeleteDo(core.Cascade)))
	})
}

func composeOne(t *testing.T, b Builder, q query.Query) (string, []core.Value) {
	t.Helper()
	stmts, err := Build(b, q)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0].Compose("?"), stmts[0].Parameters()
}

func TestGenericCreate(t *testing.T) {
	sql, _ := composeOne(t, NewGeneric(), query.CreateTable[student]())
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS students(id INTEGER PRIMARY KEY NOT NULL, "+
			"name TEXT NOT NULL, time DATETIME NOT NULL);", sql)
}

func TestGenericCreateNullableAndDefault(t *testing.T) {
	sql, _ := composeOne(t, NewGeneric(), query.CreateTable[newStudent]())
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS students(id INTEGER PRIMARY KEY NOT NULL, "+
			"full_name TEXT NOT NULL, major TEXT, grade INTEGER NOT NULL DEFAULT '50', "+
			"time DATETIME NOT NULL);", sql)
}

func TestGenericCreateForeignKey(t *testing.T) {
	sql, _ := composeOne(t, NewGeneric(), query.CreateTable[child]())
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS children(id INTEGER PRIMARY KEY NOT NULL, "+
			"parent_id INTEGER NOT NULL, "+
			"FOREIGN KEY ( parent_id ) REFERENCES parents ( id ) ON DELETE CASCADE);", sql)
}

func TestGenericCreateAsSelect(t *testing.T) {
	sql, _ := composeOne(t, NewGeneric(), query.CreateTableAs[newStudent, trimmedStudent]())
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS students AS SELECT id, CAST(NULL AS TEXT) AS full_name, "+
			"CAST(NULL AS TEXT) AS major, CAST(50 AS INTEGER) AS grade, "+
			"CAST(NULL AS DATETIME) AS time FROM old_students;", sql)
}

func TestGenericInsert(t *testing.T) {
	rec := student{ID: 1, Name: "name1", Time: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}
	sql, params := composeOne(t, NewGeneric(), query.Insert(&rec))
	assert.Equal(t, "INSERT INTO students (id, name, time) VALUES (?, ?, ?);", sql)
	require.Len(t, params, 3)
	assert.Equal(t, core.IntegerValue(1), params[0])
	assert.Equal(t, core.StringValue("name1"), params[1])
	assert.Equal(t, "2022-01-01 00:00:00.000", params[2].String())
}

func TestGenericSelectStar(t *testing.T) {
	sql, _ := composeOne(t, NewGeneric(), query.Select[student]())
	assert.Equal(t, "SELECT * FROM students;", sql)
}

func TestGenericSelectFull(t *testing.T) {
	q := query.Select[student](core.MustField[student]("id"), core.MustField[student]("name")).
		Where(query.F[student]("id").EQ(1)).
		OrderBy(query.Desc(core.MustField[student]("name"))).
		Limit(10).
		Offset(5)
	sql, params := composeOne(t, NewGeneric(), q)
	assert.Equal(t,
		"SELECT students.id, students.name FROM students WHERE (students.id = ?) "+
			"ORDER BY students.name DESC LIMIT 5, 10;", sql)
	assert.Equal(t, []core.Value{core.IntegerValue(1)}, params)
}

func TestGenericSelectJoin(t *testing.T) {
	q := query.Select[parent](core.MustField[parent]("id"), core.MustField[child]("parent_id"))
	q = query.Joined[child](q, query.F[parent]("id").EQ(core.MustField[child]("parent_id")))
	sql, _ := composeOne(t, NewGeneric(), q)
	assert.Equal(t,
		"SELECT parents.id, children.parent_id FROM parents "+
			"JOIN children ON (parents.id = children.parent_id);", sql)
}

func TestGenericUpdateFullRow(t *testing.T) {
	rec := student{ID: 1, Name: "NewName1", Time: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}
	sql, params := composeOne(t, NewGeneric(), query.Update(&rec))
	assert.Equal(t, "UPDATE students SET name = ?, time = ? WHERE (id = ?);", sql)
	require.Len(t, params, 3)
	assert.Equal(t, core.StringValue("NewName1"), params[0])
	assert.Equal(t, core.IntegerValue(1), params[2])
}

func TestGenericUpdateZeroColumns(t *testing.T) {
	rec := parent{ID: 1}
	_, err := Build(NewGeneric(), query.Update(&rec))
	var usageErr *core.UsageError
	require.ErrorAs(t, err, &usageErr)
}

func TestGenericRemove(t *testing.T) {
	q := query.Remove[student]().Where(query.F[student]("name").EQ("name3"))
	sql, params := composeOne(t, NewGeneric(), q)
	assert.Equal(t, "DELETE FROM students WHERE (students.name = ?);", sql)
	assert.Equal(t, []core.Value{core.StringValue("name3")}, params)

	sql, _ = composeOne(t, NewGeneric(), query.Remove[student]())
	assert.Equal(t, "DELETE FROM students;", sql)
}

func TestGenericDrop(t *testing.T) {
	sql, _ := composeOne(t, NewGeneric(), query.Drop[student]())
	assert.Equal(t, "DROP TABLE IF EXISTS students;", sql)
}

func TestGenericAlterPerStep(t *testing.T) {
	q := query.Alter[student, newStudent]().
		RenamingCell(core.MustField[student]("name"), core.MustField[newStudent]("full_name"))
	stmts, err := Build(NewGeneric(), q)
	require.NoError(t, err)
	var sqls []string
	for _, s := range stmts {
		sqls = append(sqls, s.Compose("?"))
	}
	assert.Equal(t, []string{
		"ALTER TABLE students RENAME COLUMN name TO full_name;",
		"ALTER TABLE students ADD grade INTEGER NOT NULL DEFAULT '50';",
		"ALTER TABLE students ADD major TEXT;",
	}, sqls)
}

func TestGenericTransactions(t *testing.T) {
	sql, _ := composeOne(t, NewGeneric(), query.Begin())
	assert.Equal(t, "BEGIN TRANSACTION;", sql)
	sql, _ = composeOne(t, NewGeneric(), query.Commit())
	assert.Equal(t, "COMMIT;", sql)
	sql, _ = composeOne(t, NewGeneric(), query.Rollback())
	assert.Equal(t, "ROLLBACK;", sql)
}

func TestBuildSurfacesQueryError(t *testing.T) {
	q := query.Select[student]().Where(query.F[student]("missing").EQ(1))
	_, err := Build(NewGeneric(), q)
	var schemaErr *core.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestRegistry(t *testing.T) {
	b, err := New(SQLite)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBuilder{}, b)

	b, err = New(MySQL)
	require.NoError(t, err)
	assert.IsType(t, &MySQLBuilder{}, b)

	_, err = New(Type("oracle"))
	require.Error(t, err)
}
