package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"chirp/internal/pkg/errs"
	"chirp/internal/pkg/logx"
)

// maxPasswordBytes is bcrypt's input limit; longer passwords would be silently truncated.
const maxPasswordBytes = 72

// Credentials is the Credential Store: it registers users with a bcrypt-hashed password
// and authenticates username/password pairs against the stored hash.
type Credentials struct {
	store Store
	cost  int

	// dummyHash is compared against when the username is unknown, so a missing user
	// costs the same bcrypt work as a wrong password.
	dummyHash []byte
}

// NewCredentials builds a Credential Store hashing with the given bcrypt cost.
func NewCredentials(store Store, cost int) (*Credentials, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("chirp-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("credentials: failed to prepare dummy hash: %w", err)
	}

	return &Credentials{store: store, cost: cost, dummyHash: dummy}, nil
}

// Register hashes rawPassword and persists a new user. It fails with errs.ErrDuplicateIdentity
// when the username is taken, in which case nothing is stored.
func (c *Credentials) Register(ctx context.Context, username, rawPassword string) (*User, error) {
	if len(rawPassword) > maxPasswordBytes {
		return nil, errs.NewValidationError(map[string][]string{
			"password": {fmt.Sprintf("Password must be at most %d bytes.", maxPasswordBytes)},
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), c.cost)
	if err != nil {
		return nil, fmt.Errorf("credentials: hash password: %w", err)
	}

	u, err := c.store.Create(ctx, username, string(hashed))
	if err != nil {
		if errs.Is(err, errs.ErrDuplicateIdentity) {
			logx.Warn("registration conflict: username already exists", "username", username)
		}
		return nil, err
	}

	logx.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Authenticate returns the user when rawPassword matches the stored hash. An unknown username
// and a wrong password both yield errs.ErrInvalidCredentials.
func (c *Credentials) Authenticate(ctx context.Context, username, rawPassword string) (*User, error) {
	// bcrypt only sees the first 72 bytes; a longer candidate never matches
	if len(rawPassword) > maxPasswordBytes {
		_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(rawPassword[:maxPasswordBytes]))
		logx.Warn("login: overlong password", "username", username)
		return nil, errs.NewError(errs.ErrInvalidCredentials)
	}

	u, err := c.store.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("credentials: lookup user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(rawPassword))
		logx.Warn("login: unknown username", "username", username)
		return nil, errs.NewError(errs.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(rawPassword)); err != nil {
		logx.Warn("login: password mismatch", "username", username)
		return nil, errs.NewError(errs.ErrInvalidCredentials)
	}

	return u, nil
}
