package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*storedOrder
	order  []string
	now    func() time.Time
}

type storedOrder struct {
	order    *domain.Order
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		orders: map[string]*storedOrder{},
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces an order while maintaining metadata.
func (r *Repository) Save(_ context.Context, order *domain.Order) (*projection.Projection[*domain.Order], error) {
	if order == nil {
		return nil, errors.New("cannot save nil order")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.orders[order.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	} else {
		r.order = append(r.order, order.ID)
	}

	stored := &storedOrder{order: order.Clone(), metadata: metadata}
	r.orders[order.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches an order if present.
func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// ListByUser returns the user's orders, newest first.
func (r *Repository) ListByUser(_ context.Context, userID string) ([]*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*projection.Projection[*domain.Order]
	for i := len(r.order) - 1; i >= 0; i-- {
		entry := r.orders[r.order[i]]
		if entry.order.UserID == userID {
			result = append(result, projectionCopy(entry))
		}
	}
	return result, nil
}

// List returns every order, newest first.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*projection.Projection[*domain.Order], 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		result = append(result, projectionCopy(r.orders[r.order[i]]))
	}
	return result, nil
}

// Delete removes an order.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func projectionCopy(entry *storedOrder) *projection.Projection[*domain.Order] {
	return &projection.Projection[*domain.Order]{
		Entity:   entry.order.Clone(),
		Metadata: entry.metadata,
	}
}
