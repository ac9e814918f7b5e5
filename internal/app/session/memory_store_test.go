package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := Session{ID: "abc", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.UserID)

	require.NoError(t, store.Delete(ctx, "abc"))
	got, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, "abc"))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: "abc", UserID: 1, ExpiresAt: now.Add(time.Minute)}))

	now = now.Add(2 * time.Minute)
	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_SaveValidation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, Session{UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}))
	assert.Error(t, store.Save(ctx, Session{ID: "abc", ExpiresAt: time.Now().Add(time.Hour)}))
	assert.Error(t, store.Save(ctx, Session{ID: "abc", UserID: 1, ExpiresAt: time.Now().Add(-time.Second)}))
}
