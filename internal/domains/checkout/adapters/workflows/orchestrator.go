package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/happypaws/happypaws-api/internal/domains/checkout/ports"
	ordersports "github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	checkoutworkflows "github.com/happypaws/happypaws-api/internal/durable/temporal/workflows/checkout"
)

var (
	_ ports.Orchestrator = (*TemporalCheckoutWorkflows)(nil)
	_ ports.Orchestrator = (*InlineCheckoutWorkflows)(nil)
)

// TemporalCheckoutWorkflows starts order submission workflows on a Temporal cluster.
type TemporalCheckoutWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckoutWorkflows wires a Temporal client into the orchestrator.
func NewTemporalCheckoutWorkflows(c client.Client) *TemporalCheckoutWorkflows {
	return &TemporalCheckoutWorkflows{client: c, taskQueue: checkoutworkflows.OrderSubmissionTaskQueue}
}

// SubmitOrder starts the Temporal workflow that places an order. A
// resubmission of the same checkout joins the already-running execution
// instead of placing a duplicate.
func (o *TemporalCheckoutWorkflows) SubmitOrder(ctx context.Context, input ports.SubmitInput) (string, error) {
	if o == nil || o.client == nil {
		return "", errors.New("temporal checkout workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildOrderSubmissionWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.OrderSubmissionWorkflow,
		checkoutworkflows.OrderSubmissionWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result checkoutworkflows.OrderSubmissionWorkflowResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return "", err
			}
			return result.OrderID, nil
		}
		return "", err
	}
	var result checkoutworkflows.OrderSubmissionWorkflowResult
	if err := run.Get(ctx, &result); err != nil {
		return "", err
	}
	return result.OrderID, nil
}

// InlineCheckoutWorkflows places the order directly without Temporal, useful
// for tests or dev fallbacks.
type InlineCheckoutWorkflows struct {
	orders ordersports.Service
}

// NewInlineCheckoutWorkflows wraps the order service for synchronous execution.
func NewInlineCheckoutWorkflows(orders ordersports.Service) *InlineCheckoutWorkflows {
	return &InlineCheckoutWorkflows{orders: orders}
}

// SubmitOrder delegates to the order service without durable orchestration.
func (o *InlineCheckoutWorkflows) SubmitOrder(ctx context.Context, input ports.SubmitInput) (string, error) {
	if o == nil || o.orders == nil {
		return "", errors.New("inline checkout workflows not configured")
	}
	projection, err := o.orders.Create(ctx, ordersports.CreateInput{
		UserID:          input.UserID,
		ListingIDs:      input.ListingIDs,
		Total:           input.Total,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
	})
	if err != nil {
		return "", err
	}
	return projection.Entity.ID, nil
}

func buildOrderSubmissionWorkflowID(input ports.SubmitInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-submission-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-submission-%s-%s", input.UserID, traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// Use the first 16 hex chars to keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
