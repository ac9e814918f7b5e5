/*
Package authz is the Authorization Gate: stateless decisions taken before the tweet store
is touched.

Reading and posting require only that someone is logged in. Deleting additionally requires
that the session identity owns the tweet. That is the only ownership rule in the system.
*/
package authz

import (
	"chirp/internal/app/session"
	"chirp/internal/pkg/errs"
)

// Owned is implemented by resources that record the user who created them.
type Owned interface {
	OwnerID() int64
}

// RequireSession returns the session identity, or errs.ErrUnauthenticated when anonymous.
func RequireSession(sess *session.Session) (int64, error) {
	userID, ok := session.Current(sess)
	if !ok {
		return 0, errs.NewError(errs.ErrUnauthenticated)
	}
	return userID, nil
}

// AuthorizeDelete allows the delete only when the session identity is the resource owner.
func AuthorizeDelete(sess *session.Session, resource Owned) error {
	userID, ok := session.Current(sess)
	if !ok {
		return errs.NewError(errs.ErrUnauthenticated)
	}
	if resource.OwnerID() != userID {
		return errs.NewError(errs.ErrForbidden)
	}
	return nil
}
