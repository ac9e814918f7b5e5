package tweet

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/app/session"
	"chirp/internal/app/user"
	"chirp/internal/pkg/errs"
)

type recordedEvent struct {
	eventType string
	payload   any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{eventType, payload})
}

func newServiceFixture(t *testing.T) (*Service, *recordingPublisher, *session.Session, *session.Session) {
	t.Helper()
	store, alice, bob := newMemoryFixture(t)
	pub := &recordingPublisher{}
	return NewService(store, pub), pub,
		&session.Session{ID: "a", UserID: alice.ID},
		&session.Session{ID: "b", UserID: bob.ID}
}

func TestService_AnonymousIsRejected(t *testing.T) {
	svc, pub, _, _ := newServiceFixture(t)
	ctx := context.Background()
	anon := &session.Session{}

	_, err := svc.List(ctx, anon)
	assert.True(t, errs.Is(err, errs.ErrUnauthenticated))

	_, err = svc.Post(ctx, anon, "hello")
	assert.True(t, errs.Is(err, errs.ErrUnauthenticated))

	err = svc.Delete(ctx, anon, 1)
	assert.True(t, errs.Is(err, errs.ErrUnauthenticated))

	assert.Empty(t, pub.events)
}

func TestService_PostListDelete(t *testing.T) {
	svc, pub, alice, bob := newServiceFixture(t)
	ctx := context.Background()

	tw, err := svc.Post(ctx, alice, "hello")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, tw.UserID)

	tweets, err := svc.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, tweets, 1)

	err = svc.Delete(ctx, bob, tw.ID)
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	tweets, err = svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, tweets, 1)

	require.NoError(t, svc.Delete(ctx, alice, tw.ID))

	tweets, err = svc.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, tweets)

	require.Len(t, pub.events, 2)
	assert.Equal(t, EventCreated, pub.events[0].eventType)
	assert.Equal(t, EventDeleted, pub.events[1].eventType)
	assert.Equal(t, map[string]int64{"id": tw.ID}, pub.events[1].payload)
}

func TestService_DeleteUnknown(t *testing.T) {
	svc, _, alice, _ := newServiceFixture(t)

	err := svc.Delete(context.Background(), alice, 42)
	assert.True(t, errs.Is(err, errs.ErrTweetNotFound))
}

func TestService_PostBlank(t *testing.T) {
	svc, pub, alice, _ := newServiceFixture(t)

	_, err := svc.Post(context.Background(), alice, " ")
	assert.True(t, errs.Is(err, errs.ErrValidation))
	assert.Empty(t, pub.events)
}

func TestService_NilPublisher(t *testing.T) {
	users := user.NewMemoryStore()
	alice, err := users.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)

	svc := NewService(NewMemoryStore(users), nil)

	_, err = svc.Post(context.Background(), &session.Session{ID: "a", UserID: alice.ID}, "hello")
	require.NoError(t, err)
}
