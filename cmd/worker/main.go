package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/happypaws/happypaws-api/internal/domains/orders/adapters/events"
	ordersmemory "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/happypaws/happypaws-api/internal/domains/orders/application"
	ordersports "github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	orderactivities "github.com/happypaws/happypaws-api/internal/durable/temporal/activities/orders"
	checkoutworkflows "github.com/happypaws/happypaws-api/internal/durable/temporal/workflows/checkout"
	platformkafka "github.com/happypaws/happypaws-api/internal/platform/kafka"
	"github.com/happypaws/happypaws-api/internal/platform/migrations"
	platformobservability "github.com/happypaws/happypaws-api/internal/platform/observability"
	platformpostgres "github.com/happypaws/happypaws-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "happypaws-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, cleanupRepo := buildOrderRepository(ctx, logger)
	defer cleanupRepo()
	publisher, cleanupPublisher := buildPublisher(logger)
	defer cleanupPublisher()

	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo,
			ordersapp.WithLogger(logger),
			ordersapp.WithPublisher(publisher),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflows.OrderSubmissionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.OrderSubmissionWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.OrderSubmissionWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.OrderSubmissionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderRepository(ctx context.Context, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		logger.Warn("worker order repository falling back to memory")
		return ordersmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker schema migration failed, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("worker order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}

func buildPublisher(logger *slog.Logger) (ordersports.EventPublisher, func()) {
	raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if raw == "" {
		return events.NoopPublisher{}, func() {}
	}
	brokers := make([]string, 0, 4)
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	topic := envOrDefault("KAFKA_ORDERS_TOPIC", events.DefaultTopic)
	producer := platformkafka.NewProducer(brokers, topic)
	logger.Info("worker order events publishing to kafka", slog.String("topic", topic))
	return events.NewKafkaPublisher(producer), func() { _ = producer.Close() }
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
