package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/happypaws/happypaws-api/internal/domains/carts/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory cart store used for demos/tests.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]string
}

// NewStore constructs an empty in-memory cart store.
func NewStore() *Store {
	return &Store{carts: map[string][]string{}}
}

// Get loads the stored identifiers for a user.
func (s *Store) Get(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.carts[userID]...), nil
}

// AddItem appends an identifier unless already present.
func (s *Store) AddItem(_ context.Context, userID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	if slices.Contains(items, listingID) {
		return nil
	}
	s.carts[userID] = append(items, listingID)
	return nil
}

// RemoveItem drops an identifier if present.
func (s *Store) RemoveItem(_ context.Context, userID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i, existing := range items {
		if existing == listingID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			break
		}
	}
	return nil
}

// Replace overwrites the whole membership for a user.
func (s *Store) Replace(_ context.Context, userID string, listingIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(listingIDs) == 0 {
		delete(s.carts, userID)
		return nil
	}
	s.carts[userID] = append([]string{}, listingIDs...)
	return nil
}
