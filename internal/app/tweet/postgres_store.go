package tweet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chirp/internal/app/db"
	"chirp/internal/pkg/errs"
)

// PostgresStore keeps tweets in the tweets table. The foreign key on user_id guards owner
// existence; Delete locks the row so the ownership check and the delete are one step.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(conn *sql.DB) *PostgresStore {
	return &PostgresStore{db: conn}
}

func (s *PostgresStore) Create(ctx context.Context, text string, ownerID int64) (*Tweet, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	query :=
		`WITH inserted AS (
		     INSERT INTO tweets (text, user_id)
		     VALUES ($1, $2)
		     RETURNING id, text, user_id
		 )
		 SELECT i.id, i.text, i.user_id, u.username
		 FROM inserted i JOIN users u ON u.id = i.user_id`

	t := &Tweet{}
	err := s.db.QueryRowContext(ctx, query, text, ownerID).Scan(&t.ID, &t.Text, &t.UserID, &t.Username)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, errs.NewError(errs.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Tweet, error) {
	query :=
		`SELECT t.id, t.text, t.user_id, u.username
		 FROM tweets t JOIN users u ON u.id = t.user_id
		 ORDER BY t.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tweets := []Tweet{}
	for rows.Next() {
		var t Tweet
		if err := rows.Scan(&t.ID, &t.Text, &t.UserID, &t.Username); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tweets, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*Tweet, error) {
	query :=
		`SELECT t.id, t.text, t.user_id, u.username
		 FROM tweets t JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1`

	t := &Tweet{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Text, &t.UserID, &t.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewError(errs.ErrTweetNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id, requesterID int64) error {
	return db.WithTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		var ownerID int64
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM tweets WHERE id = $1 FOR UPDATE`, id).Scan(&ownerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.NewError(errs.ErrTweetNotFound)
			}
			return fmt.Errorf("db error: %w", err)
		}

		if ownerID != requesterID {
			return errs.NewError(errs.ErrForbidden)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}
