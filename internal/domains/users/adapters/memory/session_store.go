package memory

import (
	"context"
	"sync"

	"github.com/happypaws/happypaws-api/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	mu      sync.RWMutex
	byToken map[string]string
	byUser  map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		byToken: map[string]string{},
		byUser:  map[string]string{},
	}
}

// Save records a token for a user, replacing any prior session.
func (s *SessionStore) Save(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prior, ok := s.byUser[userID]; ok {
		delete(s.byToken, prior)
	}
	s.byToken[token] = userID
	s.byUser[userID] = token
	return nil
}

// Resolve maps a live token back to its user id.
func (s *SessionStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byToken[token]
	if !ok {
		return "", ports.ErrSessionNotFound
	}
	return userID, nil
}

// Delete removes the user's session.
func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.byUser[userID]; ok {
		delete(s.byToken, token)
		delete(s.byUser, userID)
	}
	return nil
}
