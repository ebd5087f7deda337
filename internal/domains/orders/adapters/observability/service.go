package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

const tracerName = "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/observability/service"

// Service decorates an orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Create places an order with instrumentation.
func (s *Service) Create(ctx context.Context, input ports.CreateInput) (*projection.Projection[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.Create",
		attribute.String("order.user_id", input.UserID),
		attribute.Int("order.item_count", len(input.ListingIDs)),
		attribute.String("order.payment_method", string(input.PaymentMethod)),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("user.id", input.UserID), slog.Int("items", len(input.ListingIDs)))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("user.id", input.UserID))
	}
	if result != nil && result.Entity != nil {
		span.SetAttributes(attribute.String("order.id", result.Entity.ID))
		s.metrics.recordPlaced(ctx, result.Entity.PaymentMethod)
		s.logInfo(ctx, "order placed",
			slog.String("order.id", result.Entity.ID),
			slog.Float64("order.total", result.Entity.Total))
	}
	return result, nil
}

// GetByID loads a single order.
func (s *Service) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.String("order.id", id))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*projection.Projection[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.ListByUser", attribute.String("order.user_id", userID))
	defer span.End()

	result, err := s.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// List returns every order for admin views.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// UpdateStatus moves an order through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*projection.Projection[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateStatus",
		attribute.String("order.id", id),
		attribute.String("order.status.requested", string(status)),
	)
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order.id", id), slog.String("status", string(status)))
	result, err := s.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", id))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordStatusChange(ctx, result.Entity.Status)
		s.logInfo(ctx, "order status updated", slog.String("order.id", id), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

// Cancel moves a pending order to cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*projection.Projection[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.Cancel", attribute.String("order.id", id))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.String("order.id", id))
	result, err := s.inner.Cancel(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", id))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordStatusChange(ctx, result.Entity.Status)
		s.logInfo(ctx, "order cancelled", slog.String("order.id", id))
	}
	return result, nil
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.String("order.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.logInfo(ctx, "order deleted", slog.String("order.id", id))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	statusChanges metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	changes, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status changes"))
	return serviceMetrics{
		ordersPlaced:  placed,
		statusChanges: changes,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, method domain.PaymentMethod) {
	addCounter(ctx, m.ordersPlaced, 1, attribute.String("order.payment_method", string(method)))
}

func (m serviceMetrics) recordStatusChange(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.statusChanges, 1, attribute.String("order.status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
