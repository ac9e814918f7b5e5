/*
Package session is the Session Identity Provider. It maps a client connection to at most one
user identity across requests.

The client holds a cookie with a signed token naming a server-side session; the session record
in the Store holds the identity. Nothing but the user id is kept, in particular no credentials.
*/
package session

import (
	"context"
	"time"
)

// Session is the per-connection identity holder. A zero UserID means anonymous.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Current returns the identity established for sess, if any.
func Current(sess *Session) (int64, bool) {
	if sess == nil || sess.UserID == 0 {
		return 0, false
	}
	return sess.UserID, true
}

// Store defines how sessions are stored and retrieved. Get returns (nil, nil) for an unknown
// or expired session.
type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session resolved by Manager.Middleware. Outside the middleware it
// returns a fresh anonymous session, never nil.
func FromContext(ctx context.Context) *Session {
	if sess, ok := ctx.Value(contextKey{}).(*Session); ok && sess != nil {
		return sess
	}
	return &Session{}
}
