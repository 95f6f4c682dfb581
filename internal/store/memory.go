// internal/store/memory.go
package store

import (
	"context"
	"sync"

	"github.com/quizroom/quizroom/internal/session"
)

// MemoryStore is an in-process Store with the same contract as the
// Redis store. It backs tests and single-node dev runs; the mutex makes
// each Update an atomic read-modify-write, so no retry loop is needed.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*session.Session),
	}
}

func (s *MemoryStore) Create(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.Code]; exists {
		return ErrSessionExists
	}
	s.sessions[sess.Code] = sess.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, code string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[code]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *MemoryStore) Exists(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[code]
	return ok, nil
}

func (s *MemoryStore) Update(ctx context.Context, code string, mutate func(*session.Session) error) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[code]
	if !ok {
		return nil, ErrSessionNotFound
	}
	// Mutate a copy so a failed mutation leaves the record untouched.
	cp := sess.Clone()
	if err := mutate(cp); err != nil {
		return nil, err
	}
	s.sessions[code] = cp
	return cp.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
	return nil
}
