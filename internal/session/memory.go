package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process. It is used when no Redis address is
// configured and in tests.
type MemoryStore struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time
}

type entry struct {
	val Session
	exp time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:   make(map[string]entry),
		now: time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, sess Session, ttl time.Duration) error {
	s.mu.Lock()
	s.m[id] = entry{val: sess, exp: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	now := s.now()
	s.mu.RLock()
	e, ok := s.m[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}

	if now.After(e.exp) {
		s.mu.Lock()
		delete(s.m, id)
		s.mu.Unlock()
		return Session{}, ErrNotFound
	}

	return e.val, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	now := s.now()
	s.mu.Lock()
	e, ok := s.m[id]
	delete(s.m, id)
	s.mu.Unlock()

	if !ok || now.After(e.exp) {
		return ErrNotFound
	}
	return nil
}
