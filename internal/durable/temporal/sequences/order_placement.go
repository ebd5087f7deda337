package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	checkoutports "github.com/happypaws/happypaws-api/internal/domains/checkout/ports"
	orderactivities "github.com/happypaws/happypaws-api/internal/durable/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered set of activities needed to
// place an order from a checkout submission.
func RunOrderPlacementSequence(ctx workflow.Context, input checkoutports.SubmitInput) (string, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "userId", input.UserID, "items", len(input.ListingIDs))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var orderID string
	if err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &orderID); err != nil {
		logger.Error("order placement sequence failed", "userId", input.UserID, "error", err)
		return "", err
	}
	logger.Info("order placement sequence completed", "orderId", orderID)
	return orderID, nil
}
