package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/pkg/errs"
)

const (
	insertUserQuery   = `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*password\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id\s*$`
	selectByNameQuery = `(?s)^SELECT\s+id,\s*username,\s*password\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	selectByIDQuery   = `(?s)^SELECT\s+id,\s*username,\s*password\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewPostgresStore(sqlDB), mock
}

func TestPostgresStore_Create(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("alice", "$2a$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	u, err := store.Create(context.Background(), "alice", "$2a$hash")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 7, Username: "alice", PasswordHash: "$2a$hash"}, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Create_UniqueViolation(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("alice", "$2a$hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := store.Create(context.Background(), "alice", "$2a$hash")
	assert.True(t, errs.Is(err, errs.ErrDuplicateIdentity))
}

func TestPostgresStore_Create_DBError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("alice", "$2a$hash").
		WillReturnError(errors.New("db down"))

	_, err := store.Create(context.Background(), "alice", "$2a$hash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
	assert.False(t, errs.Is(err, errs.ErrDuplicateIdentity))
}

func TestPostgresStore_GetByUsername(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectByNameQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).AddRow(int64(1), "alice", "h"))

	u, err := store.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "h", u.PasswordHash)
}

func TestPostgresStore_GetByUsername_NotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectByNameQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := store.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresStore_GetByID(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectByIDQuery).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).AddRow(int64(1), "alice", "h"))

	u, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestPostgresStore_GetByID_DBError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectByIDQuery).WithArgs(int64(1)).WillReturnError(errors.New("db err"))

	_, err := store.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
