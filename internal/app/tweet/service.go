package tweet

import (
	"context"

	"chirp/internal/app/authz"
	"chirp/internal/app/session"
	"chirp/internal/pkg/logx"
)

// Live feed event types.
const (
	EventCreated = "tweet_created"
	EventDeleted = "tweet_deleted"
)

// Publisher receives tweet changes for the live feed.
type Publisher interface {
	Publish(eventType string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

// Service applies the Authorization Gate to every tweet operation.
type Service struct {
	store Store
	feed  Publisher
}

// NewService builds a Service. feed may be nil.
func NewService(store Store, feed Publisher) *Service {
	if feed == nil {
		feed = nopPublisher{}
	}
	return &Service{store: store, feed: feed}
}

// List returns every tweet to any logged-in session.
func (s *Service) List(ctx context.Context, sess *session.Session) ([]Tweet, error) {
	if _, err := authz.RequireSession(sess); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

// Post creates a tweet owned by the session identity.
func (s *Service) Post(ctx context.Context, sess *session.Session, text string) (*Tweet, error) {
	userID, err := authz.RequireSession(sess)
	if err != nil {
		return nil, err
	}

	t, err := s.store.Create(ctx, text, userID)
	if err != nil {
		return nil, err
	}

	logx.Info("tweet posted", "tweet_id", t.ID, "user_id", userID)
	s.feed.Publish(EventCreated, t)
	return t, nil
}

// Delete removes a tweet owned by the session identity.
func (s *Service) Delete(ctx context.Context, sess *session.Session, id int64) error {
	userID, err := authz.RequireSession(sess)
	if err != nil {
		return err
	}

	t, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.AuthorizeDelete(sess, t); err != nil {
		logx.Warn("delete denied: not the owner", "tweet_id", id, "user_id", userID)
		return err
	}

	// the store re-checks ownership under its own lock
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return err
	}

	logx.Info("tweet deleted", "tweet_id", id, "user_id", userID)
	s.feed.Publish(EventDeleted, map[string]int64{"id": id})
	return nil
}
