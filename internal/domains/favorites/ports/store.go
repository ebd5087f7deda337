package ports

import (
	"context"
	"errors"
)

// ErrAuthRequired signals a favorites operation without an authenticated user.
var ErrAuthRequired = errors.New("favorites require an authenticated user")

// Store is the system of record for favorite marks, one identifier set per
// user. Add and Remove are idempotent.
type Store interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
}
