package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chirp/internal/pkg/auth/jwt"
	"chirp/internal/pkg/logx"
	"chirp/internal/pkg/randx"
)

// Options configures a Manager.
type Options struct {
	// Secret signs the cookie token.
	Secret string

	// TTL bounds both the server-side session and the cookie.
	TTL time.Duration

	Cookie CookieOptions
}

// Manager establishes, resolves and clears session identities.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	cookie CookieOptions
}

func NewManager(store Store, opts Options) *Manager {
	return &Manager{
		store:  store,
		secret: opts.Secret,
		ttl:    opts.TTL,
		cookie: opts.Cookie,
	}
}

// Middleware resolves the session named by the request cookie and injects it into the request
// context. It never rejects a request: a missing, forged, expired or unknown session is anonymous.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.resolve(w, r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func (m *Manager) resolve(w http.ResponseWriter, r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}

	payload, err := jwt.ParseToken(cookie.Value, m.secret)
	if err != nil {
		logx.Warn("Invalid or expired session cookie, treating as anonymous", "error", err)
		ClearCookie(w, m.cookie)
		return &Session{}
	}

	if !randx.IsValidSessionID(payload.SessionID) {
		logx.Warn("Malformed session id in cookie, treating as anonymous")
		ClearCookie(w, m.cookie)
		return &Session{}
	}

	sess, err := m.store.Get(r.Context(), payload.SessionID)
	if err != nil {
		logx.Error(err, "failed to load session, treating as anonymous")
		return &Session{}
	}
	if sess == nil {
		ClearCookie(w, m.cookie)
		return &Session{}
	}

	return sess
}

// Establish records userID as the identity of sess, replacing any prior identity.
// A fresh session id is issued every time so an identity never inherits a pre-login id.
// On failure sess is left unchanged.
func (m *Manager) Establish(ctx context.Context, w http.ResponseWriter, sess *Session, userID int64) error {
	id, err := randx.SessionID()
	if err != nil {
		return err
	}

	next := Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}

	token, err := jwt.GenerateToken(&jwt.Payload{SessionID: id}, m.secret, m.ttl)
	if err != nil {
		return fmt.Errorf("session: sign cookie: %w", err)
	}

	if err := m.store.Save(ctx, next); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	if sess.ID != "" {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			logx.Error(err, "failed to delete replaced session", "user_id", sess.UserID)
		}
	}

	SetCookie(w, token, next.ExpiresAt, m.cookie)
	*sess = next

	return nil
}

// Clear removes the identity of sess. It is a no-op for an anonymous session, and store
// failures are only logged: the cookie is cleared either way.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, sess *Session) {
	if sess.ID != "" {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			logx.Error(err, "failed to delete session on logout", "user_id", sess.UserID)
		}
	}

	ClearCookie(w, m.cookie)
	*sess = Session{}
}
