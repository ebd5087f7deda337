package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/happypaws/happypaws-api/internal/domains/checkout/domain"
	"github.com/happypaws/happypaws-api/internal/domains/checkout/ports"
	ordersdomain "github.com/happypaws/happypaws-api/internal/domains/orders/domain"
)

var _ ports.Service = (*Service)(nil)

// Service drives checkout flows. Flows live in memory per user; an
// interrupted checkout starts over from the cart.
type Service struct {
	carts        ports.CartReader
	orchestrator ports.Orchestrator
	logger       *slog.Logger

	mu    sync.Mutex
	flows map[string]*flowEntry
}

// flowEntry serializes one user's checkout operations, so an in-flight
// submission blocks only that user.
type flowEntry struct {
	mu   sync.Mutex
	flow *domain.Flow
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

// NewService wires the checkout service.
func NewService(carts ports.CartReader, orchestrator ports.Orchestrator, opts ...Option) *Service {
	s := &Service{
		carts:        carts,
		orchestrator: orchestrator,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		flows:        map[string]*flowEntry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Begin starts a fresh flow at the shipping step, replacing any prior one.
func (s *Service) Begin(_ context.Context, userID string) (*domain.Flow, error) {
	if userID == "" {
		return nil, ports.ErrAuthRequired
	}
	flow, err := domain.NewFlow(userID)
	if err != nil {
		return nil, err
	}

	entry := s.entry(userID)
	entry.mu.Lock()
	entry.flow = flow
	entry.mu.Unlock()
	return flow.Clone(), nil
}

// Current returns the user's active flow.
func (s *Service) Current(_ context.Context, userID string) (*domain.Flow, error) {
	if userID == "" {
		return nil, ports.ErrAuthRequired
	}
	entry := s.entry(userID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.flow == nil {
		return nil, ports.ErrNoActiveFlow
	}
	return entry.flow.Clone(), nil
}

// SetShipping records the destination and advances to the payment step.
func (s *Service) SetShipping(_ context.Context, userID, city, country string) (*domain.Flow, error) {
	return s.mutate(userID, func(flow *domain.Flow) error {
		return flow.SetShipping(city, country)
	})
}

// SelectPayment records the payment method.
func (s *Service) SelectPayment(_ context.Context, userID string, method ordersdomain.PaymentMethod) (*domain.Flow, error) {
	return s.mutate(userID, func(flow *domain.Flow) error {
		return flow.SelectPayment(method)
	})
}

// Submit places the order from the cart. Success clears the cart and
// finishes the flow; failure parks the flow in the failed state for a retry
// from the payment step.
func (s *Service) Submit(ctx context.Context, userID string) (*domain.Flow, error) {
	if userID == "" {
		return nil, ports.ErrAuthRequired
	}

	entry := s.entry(userID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	flow := entry.flow
	if flow == nil {
		return nil, ports.ErrNoActiveFlow
	}

	itemIDs, err := s.carts.ItemIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return nil, ports.ErrEmptyCart
	}
	quote, err := s.carts.Quote(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := flow.BeginSubmit(); err != nil {
		return nil, err
	}

	input := ports.SubmitInput{
		UserID:          userID,
		ListingIDs:      itemIDs,
		Total:           quote.Total,
		PaymentMethod:   flow.PaymentMethod,
		ShippingAddress: flow.ShippingAddress(),
		IdempotencyKey:  submitKey(userID, itemIDs, flow),
	}

	orderID, err := s.orchestrator.SubmitOrder(ctx, input)
	if err != nil {
		_ = flow.FailSubmit(err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "checkout submission failed",
			slog.String("user.id", userID), slog.String("error", err.Error()))
		return flow.Clone(), err
	}

	if err := flow.CompleteSubmit(orderID); err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order is placed; a stale cart is an inconvenience, not a failure.
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to clear cart after checkout",
			slog.String("user.id", userID), slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "checkout completed",
		slog.String("user.id", userID), slog.String("order.id", orderID))
	return flow.Clone(), nil
}

// Retry moves a failed flow back to the payment step.
func (s *Service) Retry(_ context.Context, userID string) (*domain.Flow, error) {
	return s.mutate(userID, func(flow *domain.Flow) error {
		return flow.Retry()
	})
}

// Reset discards the user's flow.
func (s *Service) Reset(_ context.Context, userID string) {
	if userID == "" {
		return
	}
	entry := s.entry(userID)
	entry.mu.Lock()
	entry.flow = nil
	entry.mu.Unlock()
}

func (s *Service) mutate(userID string, fn func(*domain.Flow) error) (*domain.Flow, error) {
	if userID == "" {
		return nil, ports.ErrAuthRequired
	}
	entry := s.entry(userID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.flow == nil {
		return nil, ports.ErrNoActiveFlow
	}
	if err := fn(entry.flow); err != nil {
		return nil, err
	}
	return entry.flow.Clone(), nil
}

// entry resolves the per-user lock entry. Entries are never removed; Reset
// only clears the flow, so a concurrent holder keeps a valid lock.
func (s *Service) entry(userID string) *flowEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.flows[userID]
	if !ok {
		entry = &flowEntry{}
		s.flows[userID] = entry
	}
	return entry
}

// submitKey is deterministic for an identical checkout, so a resubmission of
// the same cart, destination, and method deduplicates downstream.
func submitKey(userID string, itemIDs []string, flow *domain.Flow) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		userID,
		strings.Join(itemIDs, ","),
		flow.PaymentMethod,
		flow.ShippingAddress(),
	)
}
