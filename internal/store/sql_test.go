package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"guestbook/internal/shared"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSQLite_SchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := &shared.ServerConfig{Backend: shared.BackendSQLite, DBPath: filepath.Join(t.TempDir(), "guestbook.db")}

	s, err := Open(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	e := newEntry(1)
	require.NoError(t, s.AppendEntry(ctx, &e))
	require.NoError(t, s.Close())

	s, err = Open(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	got, err := s.ListEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []shared.Entry{e}, got)

	tables, err := s.(*SQLStore).Tables(ctx)
	require.NoError(t, err)
	assert.Contains(t, tables, "entries")
}

func TestSQLite_AutoIncrementIDs(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(ctx, DialectSQLite, filepath.Join(t.TempDir(), "guestbook.db"))
	require.NoError(t, err)
	_, err = RunMigrations(ctx, db, DialectSQLite)
	require.NoError(t, err)

	s := NewSQLStore(db, DialectSQLite)
	defer s.Close()

	for want := int64(1); want <= 3; want++ {
		e := shared.Entry{ID: 999, Name: "n", Message: "m", CreatedAt: "2025-11-03T12:00:00Z"}
		require.NoError(t, s.AppendEntry(ctx, &e))
		assert.Equal(t, want, e.ID)
	}
}

func TestSQLite_NullNameReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(ctx, DialectSQLite, filepath.Join(t.TempDir(), "guestbook.db"))
	require.NoError(t, err)
	_, err = RunMigrations(ctx, db, DialectSQLite)
	require.NoError(t, err)
	s := NewSQLStore(db, DialectSQLite)
	defer s.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO entries (name, message, createdAt) VALUES (NULL, 'legacy', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	got, err := s.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Name)
	assert.Equal(t, "legacy", got[0].Message)
}

func TestRunMigrations_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS entries").WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := RunMigrations(context.Background(), db, DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_entries.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Failure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(".*").WillReturnError(errors.New("permission denied"))

	_, err = RunMigrations(context.Background(), db, DialectSQLite)
	assert.ErrorContains(t, err, "001_entries.sql")
}

func TestPostgres_AppendUsesReturning(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := NewSQLStore(db, DialectPostgres)
	defer s.Close()

	e := shared.Entry{Name: "Alice", Message: "Hi", CreatedAt: "2025-11-03T12:00:00Z"}
	mock.ExpectQuery(regexp.QuoteMeta(DialectPostgres.insertEntry)).
		WithArgs("Alice", "Hi", "2025-11-03T12:00:00Z").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectClose()

	require.NoError(t, s.AppendEntry(context.Background(), &e))
	assert.Equal(t, int64(42), e.ID)
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListOrdersByIDDesc(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := NewSQLStore(db, DialectPostgres)
	defer s.Close()

	mock.ExpectQuery(`SELECT id, name, message, createdAt\s+FROM entries\s+ORDER BY id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "message", "createdAt"}).
			AddRow(2, "Bob", "Yo", "2025-11-03T12:00:01Z").
			AddRow(1, nil, "Hi", "2025-11-03T12:00:00Z"))

	got, err := s.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []shared.Entry{
		{ID: 2, Name: "Bob", Message: "Yo", CreatedAt: "2025-11-03T12:00:01Z"},
		{ID: 1, Name: "", Message: "Hi", CreatedAt: "2025-11-03T12:00:00Z"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ErrorsPropagate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := NewSQLStore(db, DialectSQLite)
	defer s.Close()

	dbDown := errors.New("database is locked")
	mock.ExpectExec(regexp.QuoteMeta(DialectSQLite.insertEntry)).WillReturnError(dbDown)
	mock.ExpectQuery("SELECT id, name, message, createdAt").WillReturnError(dbDown)

	e := newEntry(1)
	err = s.AppendEntry(context.Background(), &e)
	assert.ErrorIs(t, err, dbDown)

	_, err = s.ListEntries(context.Background())
	assert.ErrorIs(t, err, dbDown)
	assert.NoError(t, mock.ExpectationsWereMet())
}
