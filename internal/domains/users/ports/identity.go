package ports

import (
	"context"
	"errors"
)

// Identity provider errors, mapped to stable auth codes at the edge.
var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityNotFound   = errors.New("identity not found")
)

// IdentityProvider holds credentials apart from profiles. Register and the
// profile save form a two-step creation; a failed profile save must be
// compensated with Delete.
type IdentityProvider interface {
	// Register creates a credential record and returns the identity id.
	Register(ctx context.Context, email, password string) (string, error)
	// Authenticate verifies credentials and returns the identity id.
	Authenticate(ctx context.Context, email, password string) (string, error)
	// Delete removes a credential record.
	Delete(ctx context.Context, identityID string) error
}
