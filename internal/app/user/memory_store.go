package user

import (
	"context"
	"sync"

	"chirp/internal/pkg/errs"
)

// MemoryStore is a process-local Store. The mutex makes check-and-insert atomic.
type MemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]*User
	byUsername map[string]*User
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:     1,
		byID:       make(map[int64]*User),
		byUsername: make(map[string]*User),
	}
}

func (s *MemoryStore) Create(_ context.Context, username, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, errs.NewError(errs.ErrDuplicateIdentity)
	}

	u := &User{ID: s.nextID, Username: username, PasswordHash: passwordHash}
	s.nextID++
	s.byID[u.ID] = u
	s.byUsername[u.Username] = u

	copied := *u
	return &copied, nil
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}
