package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/app/session"
	"chirp/internal/pkg/errs"
)

type resource int64

func (r resource) OwnerID() int64 { return int64(r) }

func TestRequireSession(t *testing.T) {
	_, err := RequireSession(&session.Session{})
	assert.True(t, errs.Is(err, errs.ErrUnauthenticated))

	_, err = RequireSession(nil)
	assert.True(t, errs.Is(err, errs.ErrUnauthenticated))

	id, err := RequireSession(&session.Session{ID: "s", UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestAuthorizeDelete(t *testing.T) {
	owner := &session.Session{ID: "a", UserID: 1}
	other := &session.Session{ID: "b", UserID: 2}
	anonymous := &session.Session{}

	assert.NoError(t, AuthorizeDelete(owner, resource(1)))
	assert.True(t, errs.Is(AuthorizeDelete(other, resource(1)), errs.ErrForbidden))
	assert.True(t, errs.Is(AuthorizeDelete(anonymous, resource(1)), errs.ErrUnauthenticated))
}
