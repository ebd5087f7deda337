package ports

import (
	"context"
	"errors"

	"github.com/happypaws/happypaws-api/internal/domains/carts/domain"
	catalogdomain "github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// ErrAuthRequired signals a cart operation without an authenticated user.
var ErrAuthRequired = errors.New("cart requires an authenticated user")

// View is the materialized cart: resolved listings in cart order plus the
// derived quote. Identifiers that no longer resolve are dropped from the
// view but kept in membership.
type View struct {
	Items   []*projection.Projection[*catalogdomain.Listing]
	Quote   domain.Quote
	Version uint64
}

// ListingResolver materializes listing identifiers into catalog projections,
// dropping the ones that no longer resolve.
type ListingResolver interface {
	Resolve(ctx context.Context, ids []string) ([]*projection.Projection[*catalogdomain.Listing], error)
}

// Service exposes the cart ledger use cases to adapters.
type Service interface {
	Get(ctx context.Context, userID string) (*View, error)
	Add(ctx context.Context, userID, listingID string) (*View, error)
	Remove(ctx context.Context, userID, listingID string) (*View, error)
	Clear(ctx context.Context, userID string) error
	Quote(ctx context.Context, userID string) (domain.Quote, error)
	// ItemIDs returns the raw membership in insertion order.
	ItemIDs(ctx context.Context, userID string) ([]string, error)
}
