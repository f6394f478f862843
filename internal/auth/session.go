package auth

import (
	"context"
	"strings"
	"sync"
)

// SessionStore tracks which issued tokens are currently logged in.
type SessionStore interface {
	RecordLogin(ctx context.Context, userID int64, token string) error
	RecordLogout(ctx context.Context, token string) error
	IsActive(ctx context.Context, token string) (bool, error)
}

// Fingerprint returns the key a session is stored under: the signature segment of the JWT.
func Fingerprint(token string) string {
	if idx := strings.LastIndexByte(token, '.'); idx >= 0 {
		return token[idx+1:]
	}
	return token
}

// MemorySessionStore keeps sessions in process memory.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]int64
}

// NewMemorySessionStore returns an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]int64)}
}

func (s *MemorySessionStore) RecordLogin(_ context.Context, userID int64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[Fingerprint(token)] = userID
	return nil
}

func (s *MemorySessionStore) RecordLogout(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, Fingerprint(token))
	return nil
}

func (s *MemorySessionStore) IsActive(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[Fingerprint(token)]
	return ok, nil
}
