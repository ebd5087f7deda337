package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/happypaws/happypaws-api/internal/domains/favorites/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory favorites store used for demos/tests.
type Store struct {
	mu        sync.RWMutex
	favorites map[string][]string
}

// NewStore constructs an empty in-memory favorites store.
func NewStore() *Store {
	return &Store{favorites: map[string][]string{}}
}

// List returns the favorite identifiers in mark order.
func (s *Store) List(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.favorites[userID]...), nil
}

// Add marks a listing unless already marked.
func (s *Store) Add(_ context.Context, userID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.favorites[userID]
	if slices.Contains(ids, listingID) {
		return nil
	}
	s.favorites[userID] = append(ids, listingID)
	return nil
}

// Remove clears a mark if present.
func (s *Store) Remove(_ context.Context, userID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.favorites[userID]
	for i, existing := range ids {
		if existing == listingID {
			s.favorites[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
