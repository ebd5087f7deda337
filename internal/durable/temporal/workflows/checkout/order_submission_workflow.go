package checkout

import (
	"go.temporal.io/sdk/workflow"

	checkoutports "github.com/happypaws/happypaws-api/internal/domains/checkout/ports"
	"github.com/happypaws/happypaws-api/internal/durable/temporal/sequences"
)

const (
	// OrderSubmissionWorkflowName is the public identifier for registering the workflow.
	OrderSubmissionWorkflowName = "checkout.workflows.OrderSubmission"
	// OrderSubmissionTaskQueue is the queue consumed by the worker processing checkout workflows.
	OrderSubmissionTaskQueue = "ORDER_SUBMISSION"
)

// OrderSubmissionWorkflowInput captures the payload required to place an order.
type OrderSubmissionWorkflowInput struct {
	Command checkoutports.SubmitInput
	TraceID string
}

// OrderSubmissionWorkflowResult carries the placed order identifier.
type OrderSubmissionWorkflowResult struct {
	OrderID string
}

// OrderSubmissionWorkflow orchestrates the activities needed to place an order
// from a checkout submission.
func OrderSubmissionWorkflow(ctx workflow.Context, input OrderSubmissionWorkflowInput) (*OrderSubmissionWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderSubmissionWorkflow started", withTraceID(input.TraceID, "userId", input.Command.UserID)...)
	orderID, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderSubmissionWorkflow failed", withTraceID(input.TraceID, "userId", input.Command.UserID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderSubmissionWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return &OrderSubmissionWorkflowResult{OrderID: orderID}, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
