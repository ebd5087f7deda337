package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	checkoutports "github.com/happypaws/happypaws-api/internal/domains/checkout/ports"
	ordersports "github.com/happypaws/happypaws-api/internal/domains/orders/ports"
)

// PlaceOrderActivityName persists a pending order from a checkout submission.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	orders ordersports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(orders ordersports.Service) *Activities {
	return &Activities{orders: orders}
}

// PlaceOrder stores a new order aggregate and returns its identifier.
func (a *Activities) PlaceOrder(ctx context.Context, input checkoutports.SubmitInput) (string, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orders == nil {
		logger.Error("place order activity not initialized", "userId", input.UserID)
		return "", errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID, "items", len(input.ListingIDs))
	projection, err := a.orders.Create(ctx, ordersports.CreateInput{
		UserID:          input.UserID,
		ListingIDs:      input.ListingIDs,
		Total:           input.Total,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
	})
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		return "", err
	}
	logger.Info("PlaceOrder activity completed", "orderId", projection.Entity.ID)
	return projection.Entity.ID, nil
}
