package ports

import (
	"context"

	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// SearchInput carries the filter criteria for a catalog search.
type SearchInput struct {
	Query         string
	Tab           domain.Tab
	MinPrice      float64
	MaxPrice      *float64
	FavoritesOnly bool
	// UserID scopes the favorites filter; empty means unauthenticated and
	// FavoritesOnly yields no favorites matches.
	UserID string
}

// ListingMutation carries optional fields for create/update operations.
type ListingMutation struct {
	Name        *string
	Breed       *string
	Age         *int
	Price       *float64
	Description *string
	ImageURLs   *[]string
	Available   *bool
}

// Service exposes catalog use cases to adapters.
type Service interface {
	Search(ctx context.Context, input SearchInput) ([]*projection.Projection[*domain.Listing], error)
	Count(ctx context.Context, tab domain.Tab) (int64, error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Listing], error)
	Resolve(ctx context.Context, ids []string) ([]*projection.Projection[*domain.Listing], error)
	AddListing(ctx context.Context, mutation ListingMutation) (*projection.Projection[*domain.Listing], error)
	UpdateListing(ctx context.Context, id string, mutation ListingMutation) (*projection.Projection[*domain.Listing], error)
	RemoveListing(ctx context.Context, id string) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Listing], error)
}

// FavoritesReader resolves the favorite set used by the favorites-only filter.
type FavoritesReader interface {
	FavoriteSet(ctx context.Context, userID string) (domain.FavoriteSet, error)
}
