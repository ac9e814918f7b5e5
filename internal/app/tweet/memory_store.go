package tweet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chirp/internal/app/user"
	"chirp/internal/pkg/errs"
)

// MemoryStore keeps tweets in insertion order in process memory. Owner existence is checked
// against the user store.
type MemoryStore struct {
	users user.Store

	mu     sync.RWMutex
	nextID int64
	tweets []Tweet
}

func NewMemoryStore(users user.Store) *MemoryStore {
	return &MemoryStore{users: users, nextID: 1}
}

func (s *MemoryStore) Create(ctx context.Context, text string, ownerID int64) (*Tweet, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errs.NewError(errs.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("lookup owner: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Tweet{ID: s.nextID, Text: text, UserID: owner.ID, Username: owner.Username}
	s.nextID++
	s.tweets = append(s.tweets, t)

	return &t, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Tweet, len(s.tweets))
	copy(out, s.tweets)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (*Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errs.NewError(errs.ErrTweetNotFound)
	}
	t := s.tweets[i]
	return &t, nil
}

func (s *MemoryStore) Delete(_ context.Context, id, requesterID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errs.NewError(errs.ErrTweetNotFound)
	}
	if s.tweets[i].UserID != requesterID {
		return errs.NewError(errs.ErrForbidden)
	}

	s.tweets = append(s.tweets[:i], s.tweets[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.tweets {
		if s.tweets[i].ID == id {
			return i
		}
	}
	return -1
}
