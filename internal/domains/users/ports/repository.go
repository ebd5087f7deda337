package ports

import (
	"context"
	"errors"

	"github.com/happypaws/happypaws-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")

// Repository is the persistence boundary for user profiles.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
}
