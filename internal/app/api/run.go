package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storefrontserver "github.com/happypaws/happypaws-api/server"

	cartmemory "github.com/happypaws/happypaws-api/internal/domains/carts/adapters/memory"
	cartpostgres "github.com/happypaws/happypaws-api/internal/domains/carts/adapters/persistence/postgres"
	cartapp "github.com/happypaws/happypaws-api/internal/domains/carts/application"
	cartsports "github.com/happypaws/happypaws-api/internal/domains/carts/ports"

	catalogmemory "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/happypaws/happypaws-api/internal/domains/catalog/application"
	catalogdomain "github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	catalogports "github.com/happypaws/happypaws-api/internal/domains/catalog/ports"

	checkoutworkflows "github.com/happypaws/happypaws-api/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/happypaws/happypaws-api/internal/domains/checkout/application"
	checkoutports "github.com/happypaws/happypaws-api/internal/domains/checkout/ports"

	favoritesmemory "github.com/happypaws/happypaws-api/internal/domains/favorites/adapters/memory"
	favoritespostgres "github.com/happypaws/happypaws-api/internal/domains/favorites/adapters/persistence/postgres"
	favoritesapp "github.com/happypaws/happypaws-api/internal/domains/favorites/application"
	favoritesports "github.com/happypaws/happypaws-api/internal/domains/favorites/ports"

	"github.com/happypaws/happypaws-api/internal/domains/orders/adapters/events"
	ordersmemory "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/happypaws/happypaws-api/internal/domains/orders/application"
	ordersports "github.com/happypaws/happypaws-api/internal/domains/orders/ports"

	usersmemory "github.com/happypaws/happypaws-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/happypaws/happypaws-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/happypaws/happypaws-api/internal/domains/users/application"
	usersports "github.com/happypaws/happypaws-api/internal/domains/users/ports"

	platformkafka "github.com/happypaws/happypaws-api/internal/platform/kafka"
	"github.com/happypaws/happypaws-api/internal/platform/migrations"
	platformobservability "github.com/happypaws/happypaws-api/internal/platform/observability"
	platformpostgres "github.com/happypaws/happypaws-api/internal/platform/postgres"
)

// Run boots the storefront HTTP API with observability, persistence, events,
// and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "happypaws-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectDatabase(ctx, cfg, logger)
	defer cleanupDB()

	// Favorites and catalog reference each other; the reader indirection
	// breaks the construction cycle.
	favoritesReader := &lazyFavoritesReader{}
	catalogService := buildCatalogService(db, favoritesReader, instruments)
	favoritesService := buildFavoritesService(db, catalogService, logger)
	favoritesReader.reader = favoritesService

	cartService := buildCartService(db, catalogService, logger)
	orderService, cleanupEvents := buildOrderService(db, cfg, instruments)
	defer cleanupEvents()
	userService := buildUserService(db, cfg, logger)

	orchestrator, cleanupWorkflows := buildOrchestrator(cfg, orderService, instruments)
	defer cleanupWorkflows()
	checkoutService := checkoutapp.NewService(cartService, orchestrator, checkoutapp.WithLogger(logger))
	watcher := catalogapp.NewWatcher(catalogService, favoritesService)

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI:   storefrontserver.NewCatalogAPI(catalogService, watcher),
		CartAPI:      storefrontserver.NewCartAPI(cartService),
		FavoritesAPI: storefrontserver.NewFavoritesAPI(favoritesService),
		CheckoutAPI:  storefrontserver.NewCheckoutAPI(checkoutService),
		OrderAPI:     storefrontserver.NewOrderAPI(orderService),
		UserAPI:      storefrontserver.NewUserAPI(userService),
	}

	auth := storefrontserver.NewAuthMiddleware(userService)
	// Middleware must be attached before the route table is mounted; gin
	// freezes each handler chain at registration.
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router = storefrontserver.NewRouterWithGinEngine(router, handlers, auth)

	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// lazyFavoritesReader defers resolution of the favorites service so catalog
// and favorites can be constructed in either order.
type lazyFavoritesReader struct {
	reader catalogports.FavoritesReader
}

func (l *lazyFavoritesReader) FavoriteSet(ctx context.Context, userID string) (catalogdomain.FavoriteSet, error) {
	if l.reader == nil {
		return nil, nil
	}
	return l.reader.FavoriteSet(ctx, userID)
}

func connectDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory stores")
		return nil, func() {}
	}
	db, cleanup, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("schema migration failed", slog.String("error", err.Error()))
		_ = cleanup()
		return nil, func() {}
	}
	logger.Info("persistence configured with postgres")
	return db, func() { _ = cleanup() }
}

func buildCatalogService(db *gorm.DB, favorites catalogports.FavoritesReader, instruments *platformobservability.Instruments) catalogports.Service {
	var repo catalogports.Repository = catalogmemory.NewRepository()
	if db != nil {
		repo = catalogpostgres.NewRepository(db)
	}
	core := catalogapp.NewService(repo, favorites)
	return catalogobs.New(
		core,
		catalogobs.WithLogger(instruments.Logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
}

func buildFavoritesService(db *gorm.DB, catalog favoritesports.ListingResolver, logger *slog.Logger) *favoritesapp.Service {
	var store favoritesports.Store = favoritesmemory.NewStore()
	if db != nil {
		store = favoritespostgres.NewStore(db)
	}
	return favoritesapp.NewService(store, catalog, favoritesapp.WithLogger(logger))
}

func buildCartService(db *gorm.DB, catalog cartsports.ListingResolver, logger *slog.Logger) *cartapp.Service {
	var store cartsports.Store = cartmemory.NewStore()
	if db != nil {
		store = cartpostgres.NewStore(db)
	}
	return cartapp.NewService(store, catalog, cartapp.WithLogger(logger))
}

func buildOrderService(db *gorm.DB, cfg Config, instruments *platformobservability.Instruments) (ordersports.Service, func()) {
	var repo ordersports.Repository = ordersmemory.NewRepository()
	if db != nil {
		repo = orderspostgres.NewRepository(db)
	}
	var publisher ordersports.EventPublisher = events.NoopPublisher{}
	cleanup := func() {}
	if len(cfg.KafkaBrokers) > 0 {
		producer := platformkafka.NewProducer(cfg.KafkaBrokers, cfg.OrdersTopic)
		publisher = events.NewKafkaPublisher(producer)
		cleanup = func() { _ = producer.Close() }
		instruments.Logger.Info("order events publishing to kafka", slog.String("topic", cfg.OrdersTopic))
	}
	core := ordersapp.NewService(repo,
		ordersapp.WithLogger(instruments.Logger),
		ordersapp.WithPublisher(publisher),
	)
	service := ordersobs.New(
		core,
		ordersobs.WithLogger(instruments.Logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return service, cleanup
}

func buildUserService(db *gorm.DB, cfg Config, logger *slog.Logger) usersports.Service {
	var repo usersports.Repository = usersmemory.NewRepository()
	var sessions usersports.SessionStore = usersmemory.NewSessionStore()
	if db != nil {
		repo = userspostgres.NewRepository(db)
		ttl := userspostgres.DefaultSessionTTL
		if cfg.SessionTTLHours > 0 {
			ttl = time.Duration(cfg.SessionTTLHours) * time.Hour
		}
		sessions = userspostgres.NewSessionStore(db, ttl)
	}
	identity := usersmemory.NewIdentityProvider()
	return usersapp.NewService(repo, identity, sessions, usersapp.WithLogger(logger))
}

func buildOrchestrator(cfg Config, orders ordersports.Service, instruments *platformobservability.Instruments) (checkoutports.Orchestrator, func()) {
	logger := instruments.Logger
	temporalClient, err := connectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, submitting orders inline", slog.String("error", err.Error()))
		return checkoutworkflows.NewInlineCheckoutWorkflows(orders), func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return checkoutworkflows.NewTemporalCheckoutWorkflows(temporalClient), temporalClient.Close
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
