package session

import (
	"context"
	"sync"

	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
)

var _ repo.SessionStore = (*MemoryStore)(nil)

// MemoryStore keeps the session for the life of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	username string
	set      bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) GetUsername(context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.set, nil
}

func (s *MemoryStore) PutUsername(_ context.Context, username string) error {
	s.mu.Lock()
	s.username, s.set = username, true
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	s.username, s.set = "", false
	s.mu.Unlock()
	return nil
}
