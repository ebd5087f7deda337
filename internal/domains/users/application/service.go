package application

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/happypaws/happypaws-api/internal/domains/users/domain"
	"github.com/happypaws/happypaws-api/internal/domains/users/ports"
)

var _ ports.Service = (*Service)(nil)

// Service exposes user bounded context use cases. Account creation spans the
// identity provider and the profile store; a failed profile write rolls the
// identity back so no orphaned credential survives.
type Service struct {
	repo     ports.Repository
	identity ports.IdentityProvider
	sessions ports.SessionStore
	logger   *slog.Logger
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the users service.
func NewService(repo ports.Repository, identity ports.IdentityProvider, sessions ports.SessionStore, opts ...Option) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	s := &Service{
		repo:     repo,
		identity: identity,
		sessions: sessions,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates the credential record first, then the profile. The
// profile takes the identity id, so both halves share one identifier.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	// Validate profile fields before touching the identity provider.
	draft := &domain.User{ID: "pending", Role: domain.RoleUser}
	if err := draft.SetName(input.Name); err != nil {
		return nil, err
	}
	if err := draft.SetEmail(input.Email); err != nil {
		return nil, err
	}

	identityID, err := s.identity.Register(ctx, draft.Email, input.Password)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(identityID, draft.Name, draft.Email)
	if err == nil {
		user, err = s.repo.Save(ctx, user)
	}
	if err != nil {
		if delErr := s.identity.Delete(ctx, identityID); delErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to roll back identity after profile save failure",
				slog.String("identity.id", identityID), slog.String("error", delErr.Error()))
		}
		return nil, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "user registered",
		slog.String("user.id", user.ID), slog.String("user.email", user.Email))
	return user, nil
}

// Login authenticates and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ports.ErrInvalidCredentials
	}

	identityID, err := s.identity.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if err := s.sessions.Save(ctx, user.ID, token); err != nil {
		return nil, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "user logged in", slog.String("user.id", user.ID))
	return &ports.Session{Token: token, User: user}, nil
}

// Logout closes the user's sessions.
func (s *Service) Logout(ctx context.Context, userID string) {
	if strings.TrimSpace(userID) == "" {
		return
	}
	_ = s.sessions.Delete(ctx, userID)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "user logged out", slog.String("user.id", userID))
}

// Authenticate resolves a bearer token to its profile.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ports.ErrSessionNotFound
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

// GetByID loads a profile.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes the profile, its sessions, and the credential record.
func (s *Service) Delete(ctx context.Context, id string) error {
	_ = s.sessions.Delete(ctx, id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.identity.Delete(ctx, id); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to delete identity",
			slog.String("user.id", id), slog.String("error", err.Error()))
	}
	return nil
}

// List returns all profiles for admin views.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}
