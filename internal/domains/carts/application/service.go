package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/happypaws/happypaws-api/internal/domains/carts/domain"
	"github.com/happypaws/happypaws-api/internal/domains/carts/ports"
)

var _ ports.Service = (*Service)(nil)

// Service keeps a per-user materialized cart in front of the remote store.
// Writes go to the store first; local state only changes after the store
// accepts, so a failed write leaves the cart exactly as it was.
type Service struct {
	store   ports.Store
	catalog ports.ListingResolver
	logger  *slog.Logger

	mu    sync.Mutex
	carts map[string]*cartEntry
}

// cartEntry serializes all operations for one user's cart.
type cartEntry struct {
	mu     sync.Mutex
	cart   *domain.Cart
	loaded bool
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

// NewService wires the cart service with its store and catalog resolver.
func NewService(store ports.Store, catalog ports.ListingResolver, opts ...Option) *Service {
	s := &Service{
		store:   store,
		catalog: catalog,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		carts:   map[string]*cartEntry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns the materialized cart view for a user. Anonymous readers see
// an empty cart; only mutations demand authentication.
func (s *Service) Get(ctx context.Context, userID string) (*ports.View, error) {
	if userID == "" {
		return &ports.View{Quote: domain.Price(nil)}, nil
	}
	entry, err := s.lockEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()
	return s.view(ctx, entry.cart)
}

// ItemIDs returns the raw membership in insertion order. Empty for
// anonymous readers.
func (s *Service) ItemIDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, nil
	}
	entry, err := s.lockEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()
	return entry.cart.Items(), nil
}

// Add puts a listing into the cart. Adding a present listing is a no-op and
// performs no remote write.
func (s *Service) Add(ctx context.Context, userID, listingID string) (*ports.View, error) {
	entry, err := s.lockEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	if !entry.cart.Contains(listingID) {
		if err := s.store.AddItem(ctx, userID, listingID); err != nil {
			return nil, fmt.Errorf("%w: %w", ports.ErrPersistence, err)
		}
		entry.cart.Add(listingID)
		s.logger.LogAttrs(ctx, slog.LevelInfo, "cart item added",
			slog.String("user.id", userID), slog.String("listing.id", listingID),
			slog.Uint64("cart.version", entry.cart.Version()))
	}
	return s.view(ctx, entry.cart)
}

// Remove drops a listing from the cart. Removing an absent listing is a
// no-op and performs no remote write.
func (s *Service) Remove(ctx context.Context, userID, listingID string) (*ports.View, error) {
	entry, err := s.lockEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	if entry.cart.Contains(listingID) {
		if err := s.store.RemoveItem(ctx, userID, listingID); err != nil {
			return nil, fmt.Errorf("%w: %w", ports.ErrPersistence, err)
		}
		entry.cart.Remove(listingID)
		s.logger.LogAttrs(ctx, slog.LevelInfo, "cart item removed",
			slog.String("user.id", userID), slog.String("listing.id", listingID),
			slog.Uint64("cart.version", entry.cart.Version()))
	}
	return s.view(ctx, entry.cart)
}

// Clear empties the cart, store first.
func (s *Service) Clear(ctx context.Context, userID string) error {
	entry, err := s.lockEntry(ctx, userID)
	if err != nil {
		return err
	}
	defer entry.mu.Unlock()

	if err := s.store.Replace(ctx, userID, nil); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrPersistence, err)
	}
	entry.cart.Clear()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "cart cleared", slog.String("user.id", userID))
	return nil
}

// Quote derives the price breakdown for the resolvable cart contents.
func (s *Service) Quote(ctx context.Context, userID string) (domain.Quote, error) {
	view, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Quote{}, err
	}
	return view.Quote, nil
}

// lockEntry resolves and locks the per-user entry, loading the remote state
// on first access. Callers must unlock entry.mu. All mutations pass through
// here, so an empty userID always fails them with ErrAuthRequired.
func (s *Service) lockEntry(ctx context.Context, userID string) (*cartEntry, error) {
	if userID == "" {
		return nil, ports.ErrAuthRequired
	}

	s.mu.Lock()
	entry, ok := s.carts[userID]
	if !ok {
		cart, err := domain.NewCart(userID)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		entry = &cartEntry{cart: cart}
		s.carts[userID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	if !entry.loaded {
		ids, err := s.store.Get(ctx, userID)
		if err != nil {
			entry.mu.Unlock()
			return nil, fmt.Errorf("%w: %w", ports.ErrPersistence, err)
		}
		entry.cart.Replace(ids)
		entry.loaded = true
	}
	return entry, nil
}

func (s *Service) view(ctx context.Context, cart *domain.Cart) (*ports.View, error) {
	items, err := s.catalog.Resolve(ctx, cart.Items())
	if err != nil {
		return nil, err
	}
	prices := make([]float64, 0, len(items))
	for _, item := range items {
		prices = append(prices, item.Entity.Price)
	}
	return &ports.View{
		Items:   items,
		Quote:   domain.Price(prices),
		Version: cart.Version(),
	}, nil
}
