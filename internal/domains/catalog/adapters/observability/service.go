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

	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

const tracerName = "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/observability/service"

// Service decorates a catalog application port with tracing, logging, and metrics.
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

// Search applies the combined catalog filter with instrumentation.
func (s *Service) Search(ctx context.Context, input ports.SearchInput) ([]*projection.Projection[*domain.Listing], error) {
	ctx, span := s.startSpan(ctx, "Service.Search",
		attribute.String("catalog.tab", string(input.Tab)),
		attribute.Bool("catalog.favorites_only", input.FavoritesOnly),
	)
	defer span.End()

	s.logInfo(ctx, "searching listings", slog.String("tab", string(input.Tab)), slog.String("query", input.Query))
	result, err := s.inner.Search(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search listings", slog.String("tab", string(input.Tab)))
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	s.metrics.recordSearch(ctx, input.Tab)
	s.logInfo(ctx, "searched listings", slog.Int("count", len(result)))
	return result, nil
}

// Count returns the store-side count for a tab predicate.
func (s *Service) Count(ctx context.Context, tab domain.Tab) (int64, error) {
	ctx, span := s.startSpan(ctx, "Service.Count", attribute.String("catalog.tab", string(tab)))
	defer span.End()

	count, err := s.inner.Count(ctx, tab)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count listings", slog.String("tab", string(tab)))
	}
	span.SetAttributes(attribute.Int64("catalog.result.count", count))
	return count, nil
}

// GetByID loads a single listing.
func (s *Service) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Listing], error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.String("listing.id", id))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load listing", slog.String("listing.id", id))
	}
	return result, nil
}

// Resolve materializes identifiers, skipping the ones that no longer resolve.
func (s *Service) Resolve(ctx context.Context, ids []string) ([]*projection.Projection[*domain.Listing], error) {
	ctx, span := s.startSpan(ctx, "Service.Resolve", attribute.Int("listing.ids.requested", len(ids)))
	defer span.End()

	result, err := s.inner.Resolve(ctx, ids)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resolve listings", slog.Int("requested", len(ids)))
	}
	span.SetAttributes(attribute.Int("listing.ids.resolved", len(result)))
	return result, nil
}

// AddListing persists a new listing aggregate.
func (s *Service) AddListing(ctx context.Context, mutation ports.ListingMutation) (*projection.Projection[*domain.Listing], error) {
	ctx, span := s.startSpan(ctx, "Service.AddListing")
	defer span.End()

	s.logInfo(ctx, "adding listing")
	result, err := s.inner.AddListing(ctx, mutation)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add listing")
	}
	if result != nil && result.Entity != nil {
		span.SetAttributes(attribute.String("listing.id", result.Entity.ID))
		s.metrics.recordCreated(ctx, result.Entity.Breed)
		s.logInfo(ctx, "listing added", slog.String("listing.id", result.Entity.ID), slog.String("breed", result.Entity.Breed))
	}
	return result, nil
}

// UpdateListing applies a partial mutation to an existing listing.
func (s *Service) UpdateListing(ctx context.Context, id string, mutation ports.ListingMutation) (*projection.Projection[*domain.Listing], error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateListing", attribute.String("listing.id", id))
	defer span.End()

	s.logInfo(ctx, "updating listing", slog.String("listing.id", id))
	result, err := s.inner.UpdateListing(ctx, id, mutation)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update listing", slog.String("listing.id", id))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordUpdated(ctx)
		s.logInfo(ctx, "listing updated", slog.String("listing.id", result.Entity.ID))
	}
	return result, nil
}

// RemoveListing deletes a listing from the catalog.
func (s *Service) RemoveListing(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "Service.RemoveListing", attribute.String("listing.id", id))
	defer span.End()

	s.logInfo(ctx, "removing listing", slog.String("listing.id", id))
	if err := s.inner.RemoveListing(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to remove listing", slog.String("listing.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "listing removed", slog.String("listing.id", id))
	return nil
}

// List exposes every listing for admin views.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Listing], error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list listings")
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	return result, nil
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
	searches        metric.Int64Counter
	listingsCreated metric.Int64Counter
	listingsUpdated metric.Int64Counter
	listingsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	searches, _ := m.Int64Counter("catalog.service.searches", metric.WithDescription("Number of catalog searches"))
	created, _ := m.Int64Counter("catalog.service.created", metric.WithDescription("Number of listings created"))
	updated, _ := m.Int64Counter("catalog.service.updated", metric.WithDescription("Number of listings updated"))
	deleted, _ := m.Int64Counter("catalog.service.deleted", metric.WithDescription("Number of listings deleted"))
	return serviceMetrics{
		searches:        searches,
		listingsCreated: created,
		listingsUpdated: updated,
		listingsDeleted: deleted,
	}
}

func (m serviceMetrics) recordSearch(ctx context.Context, tab domain.Tab) {
	addCounter(ctx, m.searches, 1, attribute.String("catalog.tab", string(tab)))
}

func (m serviceMetrics) recordCreated(ctx context.Context, breed string) {
	addCounter(ctx, m.listingsCreated, 1, attribute.String("listing.breed", breed))
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	addCounter(ctx, m.listingsUpdated, 1)
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.listingsDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
