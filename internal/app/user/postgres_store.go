package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chirp/internal/app/db"
	"chirp/internal/pkg/errs"
)

// PostgresStore keeps users in the users table. Uniqueness is the table's UNIQUE constraint.
type PostgresStore struct {
	db db.DBTX
}

func NewPostgresStore(conn db.DBTX) *PostgresStore {
	return &PostgresStore{db: conn}
}

func (s *PostgresStore) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	query :=
		`INSERT INTO users (username, password)
		 VALUES ($1, $2)
		 RETURNING id`

	u := &User{Username: username, PasswordHash: passwordHash}
	err := s.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&u.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errs.NewError(errs.ErrDuplicateIdentity)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	query :=
		`SELECT id, username, password FROM users
		 WHERE username = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, username))
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*User, error) {
	query :=
		`SELECT id, username, password FROM users
		 WHERE id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) scanOne(row *sql.Row) (*User, error) {
	u := &User{}
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
