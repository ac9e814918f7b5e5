/*
Package user owns registered accounts: the User record, its storage, and the Credential Store
that hashes passwords on registration and verifies them on login.
*/
package user

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// User represents a registered account.
type User struct {
	// ID is assigned by the store, monotonically, and never changes.
	ID int64 `json:"id"`

	// Username is unique and case-sensitive.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the password. It is never serialized.
	PasswordHash string `json:"-"`
}

// Store persists users. Implementations must enforce username uniqueness atomically:
// of two concurrent Create calls with the same username exactly one succeeds, the other
// fails with errs.ErrDuplicateIdentity and leaves no record behind.
type Store interface {
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
