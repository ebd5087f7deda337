package ports

import (
	"context"
	"errors"

	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

var ErrNotFound = errors.New("listing not found")

// Repository persists catalog listings. FindByTab and CountByTab push the
// availability/age predicates down to the store; text and price filtering
// happen in the application layer.
type Repository interface {
	Save(ctx context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Listing], error)
	// GetByIDs resolves the given identifiers, silently skipping those that
	// no longer exist. Result order follows the input order.
	GetByIDs(ctx context.Context, ids []string) ([]*projection.Projection[*domain.Listing], error)
	Delete(ctx context.Context, id string) error
	FindByTab(ctx context.Context, tab domain.Tab) ([]*projection.Projection[*domain.Listing], error)
	CountByTab(ctx context.Context, tab domain.Tab) (int64, error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Listing], error)
}
