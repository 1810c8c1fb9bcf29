package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pptuition/tuition-backend/internal/model"
)

// MemoryStore is an in-process SessionStore for tests and single-node dev
// runs. It round-trips through JSON like RedisStore so callers never share
// a pointer with the stored record.
type MemoryStore struct {
	mu  sync.RWMutex
	raw []byte
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Put(_ context.Context, session *model.LiveSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	return nil
}

func (s *MemoryStore) Get(_ context.Context) (*model.LiveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.raw == nil {
		return nil, ErrNotFound
	}

	var session model.LiveSession
	if err := json.Unmarshal(s.raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = nil
	return nil
}
