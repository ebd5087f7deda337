package ports

import (
	"context"

	catalogdomain "github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// ListingResolver materializes listing identifiers into catalog projections.
type ListingResolver interface {
	Resolve(ctx context.Context, ids []string) ([]*projection.Projection[*catalogdomain.Listing], error)
}

// Service exposes the favorites use cases to adapters. It also serves as the
// favorite-set source for the catalog's favorites-only filter.
type Service interface {
	// List materializes the user's favorites in mark order.
	List(ctx context.Context, userID string) ([]*projection.Projection[*catalogdomain.Listing], error)
	// IDs returns the raw favorite identifiers in mark order.
	IDs(ctx context.Context, userID string) ([]string, error)
	// Toggle flips the mark for a listing and reports the resulting state.
	Toggle(ctx context.Context, userID, listingID string) (bool, error)
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	// FavoriteSet resolves the membership set for filtering.
	FavoriteSet(ctx context.Context, userID string) (catalogdomain.FavoriteSet, error)
	// Subscribe delivers the full favorite set after every mutation for the
	// user. The returned cancel func releases the subscription.
	Subscribe(userID string) (<-chan catalogdomain.FavoriteSet, func())
}
