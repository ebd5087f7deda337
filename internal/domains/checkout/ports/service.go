package ports

import (
	"context"
	"errors"

	cartsdomain "github.com/happypaws/happypaws-api/internal/domains/carts/domain"
	"github.com/happypaws/happypaws-api/internal/domains/checkout/domain"
	ordersdomain "github.com/happypaws/happypaws-api/internal/domains/orders/domain"
)

// Checkout service errors.
var (
	ErrAuthRequired = errors.New("checkout requires an authenticated user")
	ErrNoActiveFlow = errors.New("no active checkout flow")
	ErrEmptyCart    = errors.New("cannot check out an empty cart")
)

// CartReader is the slice of the cart service checkout depends on.
type CartReader interface {
	ItemIDs(ctx context.Context, userID string) ([]string, error)
	Quote(ctx context.Context, userID string) (cartsdomain.Quote, error)
	Clear(ctx context.Context, userID string) error
}

// SubmitInput is the order placement command handed to the orchestrator.
type SubmitInput struct {
	UserID          string
	ListingIDs      []string
	Total           float64
	PaymentMethod   ordersdomain.PaymentMethod
	ShippingAddress string
	// IdempotencyKey deduplicates resubmissions of the same checkout.
	IdempotencyKey string
}

// Orchestrator places the order, durably when a workflow engine is
// configured. It returns the placed order id.
type Orchestrator interface {
	SubmitOrder(ctx context.Context, input SubmitInput) (string, error)
}

// Service drives a user's checkout flow.
type Service interface {
	Begin(ctx context.Context, userID string) (*domain.Flow, error)
	Current(ctx context.Context, userID string) (*domain.Flow, error)
	SetShipping(ctx context.Context, userID, city, country string) (*domain.Flow, error)
	SelectPayment(ctx context.Context, userID string, method ordersdomain.PaymentMethod) (*domain.Flow, error)
	// Submit places the order from the cart. On success the cart is cleared
	// and the flow finishes; on failure the flow returns to the payment step.
	Submit(ctx context.Context, userID string) (*domain.Flow, error)
	Retry(ctx context.Context, userID string) (*domain.Flow, error)
	Reset(ctx context.Context, userID string)
}
