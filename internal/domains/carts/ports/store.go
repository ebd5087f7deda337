package ports

import (
	"context"
	"errors"
)

// ErrPersistence signals the backing cart store rejected or failed an
// operation. Local cart state must not change when a write returns it.
var ErrPersistence = errors.New("cart store operation failed")

// Store is the remote system of record for cart membership. Implementations
// persist one ordered identifier set per user.
type Store interface {
	// Get loads the stored identifiers for a user, empty when absent.
	Get(ctx context.Context, userID string) ([]string, error)
	// AddItem appends an identifier; adding a present one is a no-op.
	AddItem(ctx context.Context, userID, listingID string) error
	// RemoveItem drops an identifier; removing an absent one is a no-op.
	RemoveItem(ctx context.Context, userID, listingID string) error
	// Replace overwrites the whole membership for a user.
	Replace(ctx context.Context, userID string, listingIDs []string) error
}
