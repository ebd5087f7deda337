package ports

import (
	"context"
	"errors"
)

// ErrSessionNotFound signals an unknown or expired token.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session/token persistence.
type SessionStore interface {
	Save(ctx context.Context, userID, token string) error
	// Resolve maps a live token back to its user id.
	Resolve(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _ string, _ string) error { return nil }
func (noopSessionStore) Resolve(_ context.Context, _ string) (string, error) {
	return "", ErrSessionNotFound
}
func (noopSessionStore) Delete(_ context.Context, _ string) error { return nil }
