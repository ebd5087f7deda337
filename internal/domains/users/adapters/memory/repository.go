package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/happypaws/happypaws-api/internal/domains/users/domain"
	"github.com/happypaws/happypaws-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user profile store used for demos/tests.
type Repository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		users:   map[string]*domain.User{},
		byEmail: map[string]string{},
	}
}

// Save inserts or replaces a profile.
func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[clone.ID]; ok {
		delete(r.byEmail, emailKey(existing.Email))
	}
	r.users[clone.ID] = &clone
	r.byEmail[emailKey(clone.Email)] = clone.ID
	result := clone
	return &result, nil
}

// GetByID fetches a profile by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

// GetByEmail fetches a profile by email, case-insensitively.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[emailKey(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a profile.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byEmail, emailKey(user.Email))
	delete(r.users, id)
	return nil
}

// List returns all profiles.
func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		result = append(result, &clone)
	}
	return result, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
