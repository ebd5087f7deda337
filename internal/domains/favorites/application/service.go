package application

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	catalogdomain "github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/favorites/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

var _ ports.Service = (*Service)(nil)

// Service manages favorite marks and fans the full set out to subscribers
// after every mutation, so views re-render from current state rather than
// applying deltas.
type Service struct {
	store   ports.Store
	catalog ports.ListingResolver
	logger  *slog.Logger

	mu          sync.Mutex
	subscribers map[string][]chan catalogdomain.FavoriteSet
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the favorites service.
func NewService(store ports.Store, catalog ports.ListingResolver, opts ...Option) *Service {
	s := &Service{
		store:       store,
		catalog:     catalog,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		subscribers: map[string][]chan catalogdomain.FavoriteSet{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List materializes the user's favorites in mark order.
func (s *Service) List(ctx context.Context, userID string) ([]*projection.Projection[*catalogdomain.Listing], error) {
	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.catalog.Resolve(ctx, ids)
}

// IDs returns the raw favorite identifiers in mark order.
func (s *Service) IDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, ports.ErrAuthRequired
	}
	return s.store.List(ctx, userID)
}

// Toggle flips the mark for a listing and reports the resulting state.
func (s *Service) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return false, err
	}
	if slices.Contains(ids, listingID) {
		return false, s.Remove(ctx, userID, listingID)
	}
	return true, s.Add(ctx, userID, listingID)
}

// Add marks a listing as favorite.
func (s *Service) Add(ctx context.Context, userID, listingID string) error {
	if userID == "" {
		return ports.ErrAuthRequired
	}
	if err := s.store.Add(ctx, userID, listingID); err != nil {
		return err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorite added",
		slog.String("user.id", userID), slog.String("listing.id", listingID))
	s.notify(ctx, userID)
	return nil
}

// Remove clears a favorite mark.
func (s *Service) Remove(ctx context.Context, userID, listingID string) error {
	if userID == "" {
		return ports.ErrAuthRequired
	}
	if err := s.store.Remove(ctx, userID, listingID); err != nil {
		return err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorite removed",
		slog.String("user.id", userID), slog.String("listing.id", listingID))
	s.notify(ctx, userID)
	return nil
}

// FavoriteSet resolves the membership set for filtering.
func (s *Service) FavoriteSet(ctx context.Context, userID string) (catalogdomain.FavoriteSet, error) {
	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

// Subscribe delivers the full favorite set after every mutation for the user.
// Delivery is lossy under a slow consumer: a pending set is replaced by the
// newer one rather than blocking the mutator.
func (s *Service) Subscribe(userID string) (<-chan catalogdomain.FavoriteSet, func()) {
	ch := make(chan catalogdomain.FavoriteSet, 1)

	s.mu.Lock()
	s.subscribers[userID] = append(s.subscribers[userID], ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subscribers[userID]
		for i, existing := range subs {
			if existing == ch {
				s.subscribers[userID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
		if len(s.subscribers[userID]) == 0 {
			delete(s.subscribers, userID)
		}
	}
	return ch, cancel
}

func (s *Service) notify(ctx context.Context, userID string) {
	ids, err := s.store.List(ctx, userID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to load favorites for notify",
			slog.String("user.id", userID), slog.String("error", err.Error()))
		return
	}
	set := toSet(ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers[userID] {
		// Drain a stale pending set so the channel always holds the latest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- set:
		default:
		}
	}
}

func toSet(ids []string) catalogdomain.FavoriteSet {
	set := make(catalogdomain.FavoriteSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
