package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog store used for demos/tests.
type Repository struct {
	mu       sync.RWMutex
	listings map[string]*storedListing
	order    []string
	now      func() time.Time
}

type storedListing struct {
	listing  *domain.Listing
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		listings: map[string]*storedListing{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a listing while maintaining metadata.
func (r *Repository) Save(_ context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error) {
	if listing == nil {
		return nil, errors.New("cannot save nil listing")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.listings[listing.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	} else {
		r.order = append(r.order, listing.ID)
	}

	stored := &storedListing{listing: listing.Clone(), metadata: metadata}
	r.listings[listing.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a listing if present.
func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Listing], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.listings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// GetByIDs resolves identifiers in input order, skipping missing ones.
func (r *Repository) GetByIDs(_ context.Context, ids []string) ([]*projection.Projection[*domain.Listing], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*projection.Projection[*domain.Listing], 0, len(ids))
	for _, id := range ids {
		if entry, ok := r.listings[id]; ok {
			result = append(result, projectionCopy(entry))
		}
	}
	return result, nil
}

// Delete removes a listing.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.listings, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByTab returns listings matching the tab predicate in insertion order.
func (r *Repository) FindByTab(_ context.Context, tab domain.Tab) ([]*projection.Projection[*domain.Listing], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*projection.Projection[*domain.Listing], 0, len(r.order))
	for _, id := range r.order {
		entry := r.listings[id]
		if matchesTab(entry.listing, tab) {
			result = append(result, projectionCopy(entry))
		}
	}
	return result, nil
}

// CountByTab counts listings matching the tab predicate.
func (r *Repository) CountByTab(_ context.Context, tab domain.Tab) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, entry := range r.listings {
		if matchesTab(entry.listing, tab) {
			count++
		}
	}
	return count, nil
}

// List returns every stored listing in insertion order.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Listing], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*projection.Projection[*domain.Listing], 0, len(r.order))
	for _, id := range r.order {
		result = append(result, projectionCopy(r.listings[id]))
	}
	return result, nil
}

func matchesTab(l *domain.Listing, tab domain.Tab) bool {
	switch tab {
	case domain.TabAvailable:
		return l.Available
	case domain.TabPuppies:
		return l.Age <= domain.PuppyMaxAge
	case domain.TabAdults:
		return l.Age > domain.PuppyMaxAge
	default:
		return true
	}
}

func projectionCopy(entry *storedListing) *projection.Projection[*domain.Listing] {
	return &projection.Projection[*domain.Listing]{
		Entity:   entry.listing.Clone(),
		Metadata: entry.metadata,
	}
}
