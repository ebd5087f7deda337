package ports

import (
	"context"

	"github.com/happypaws/happypaws-api/internal/domains/users/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session pairs a bearer token with the authenticated profile.
type Session struct {
	Token string
	User  *domain.User
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, userID string)
	// Authenticate resolves a bearer token to its profile.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
}
