package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

var _ ports.Service = (*Service)(nil)

// Service orchestrates the order bounded context use cases.
type Service struct {
	repo      ports.Repository
	publisher ports.EventPublisher
	logger    *slog.Logger
}

type Option func(*Service)

// WithPublisher injects the order event publisher.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the order service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create validates and persists a pending order, then emits the created
// event. A failed publish never fails the placement.
func (s *Service) Create(ctx context.Context, input ports.CreateInput) (*projection.Projection[*domain.Order], error) {
	order, err := domain.NewOrder(
		uuid.NewString(),
		input.UserID,
		input.ListingIDs,
		input.Total,
		input.PaymentMethod,
		input.ShippingAddress,
	)
	if err != nil {
		return nil, mapError(err)
	}

	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.OrderCreated(ctx, saved.Entity); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to publish order created event",
				slog.String("order.id", saved.Entity.ID), slog.String("error", err.Error()))
		}
	}
	return saved, nil
}

// GetByID loads a single order.
func (s *Service) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Order], error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*projection.Projection[*domain.Order], error) {
	return s.repo.ListByUser(ctx, userID)
}

// List returns every order for admin views.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Order], error) {
	return s.repo.List(ctx)
}

// UpdateStatus moves an order through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*projection.Projection[*domain.Order], error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := current.Entity.UpdateStatus(status); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, current.Entity)
}

// Cancel moves a pending order to cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*projection.Projection[*domain.Order], error) {
	return s.UpdateStatus(ctx, id, domain.StatusCancelled)
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
