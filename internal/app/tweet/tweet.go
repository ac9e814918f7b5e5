/*
Package tweet is the Post Repository and the service that guards it.

Stores own tweet records and keep each tweet linked to an existing user; Service puts the
Authorization Gate in front of every read and mutation and announces changes on the live feed.
*/
package tweet

import (
	"context"
	"strings"

	"chirp/internal/pkg/errs"
)

// Tweet is one user-authored message. Its owner never changes after creation.
type Tweet struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	UserID int64  `json:"userId"`

	// Username is the owner's name, joined in for display.
	Username string `json:"username"`
}

// OwnerID returns the id of the user who created the tweet.
func (t Tweet) OwnerID() int64 {
	return t.UserID
}

// Store persists tweets.
//
// Create fails with errs.ErrValidation for blank text and errs.ErrUnauthenticated when the
// owner does not exist. List returns every tweet in creation order. Get and Delete fail with
// errs.ErrTweetNotFound for an unknown id; Delete fails with errs.ErrForbidden when
// requesterID is not the owner. A failed Delete leaves the collection unchanged.
type Store interface {
	Create(ctx context.Context, text string, ownerID int64) (*Tweet, error)
	List(ctx context.Context) ([]Tweet, error)
	Get(ctx context.Context, id int64) (*Tweet, error)
	Delete(ctx context.Context, id, requesterID int64) error
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.NewValidationError(map[string][]string{"text": {"This field is required."}})
	}
	return nil
}
