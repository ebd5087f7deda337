package ports

import (
	"context"
	"errors"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// ErrNotFound signals a missing order.
var ErrNotFound = errors.New("order not found")

// Repository is the persistence boundary for order aggregates.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*projection.Projection[*domain.Order], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Order], error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*projection.Projection[*domain.Order], error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]*projection.Projection[*domain.Order], error)
	Delete(ctx context.Context, id string) error
}
