package ports

import (
	"context"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// CreateInput carries everything needed to place an order.
type CreateInput struct {
	UserID          string
	ListingIDs      []string
	Total           float64
	PaymentMethod   domain.PaymentMethod
	ShippingAddress string
}

// Service exposes the order use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*projection.Projection[*domain.Order], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Order], error)
	ListByUser(ctx context.Context, userID string) ([]*projection.Projection[*domain.Order], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Order], error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*projection.Projection[*domain.Order], error)
	Cancel(ctx context.Context, id string) (*projection.Projection[*domain.Order], error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher emits order lifecycle events to downstream consumers.
// Publishing is best effort and must not fail the originating operation.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
}
