//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/happypaws/happypaws-api/test/pact"

	cartmemory "github.com/happypaws/happypaws-api/internal/domains/carts/adapters/memory"
	cartapp "github.com/happypaws/happypaws-api/internal/domains/carts/application"
	catalogmemory "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/happypaws/happypaws-api/internal/domains/catalog/application"
	catalogdomain "github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	checkoutworkflows "github.com/happypaws/happypaws-api/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/happypaws/happypaws-api/internal/domains/checkout/application"
	favoritesmemory "github.com/happypaws/happypaws-api/internal/domains/favorites/adapters/memory"
	favoritesapp "github.com/happypaws/happypaws-api/internal/domains/favorites/application"
	ordersmemory "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/memory"
	ordersapp "github.com/happypaws/happypaws-api/internal/domains/orders/application"
	usersmemory "github.com/happypaws/happypaws-api/internal/domains/users/adapters/memory"
	usersapp "github.com/happypaws/happypaws-api/internal/domains/users/application"
	storefrontserver "github.com/happypaws/happypaws-api/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			return nil, nil
		},
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			if setup {
				app.seedListing(t, pacttest.ExistingListingID)
			}
			return nil, nil
		},
		pacttest.StateListingExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			if setup {
				app.seedListing(t, pacttest.ExistingListingID)
			}
			return nil, nil
		},
		pacttest.StateListingMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetListings(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *catalogmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	catalogRepo := catalogmemory.NewRepository()
	favoritesStore := favoritesmemory.NewStore()

	catalogCore := catalogapp.NewService(catalogRepo, nil)
	catalogService := catalogobs.New(catalogCore)
	favoritesService := favoritesapp.NewService(favoritesStore, catalogService)
	cartService := cartapp.NewService(cartmemory.NewStore(), catalogService)
	orderService := ordersapp.NewService(ordersmemory.NewRepository())
	userService := usersapp.NewService(usersmemory.NewRepository(), usersmemory.NewIdentityProvider(), usersmemory.NewSessionStore())
	checkoutService := checkoutapp.NewService(cartService, checkoutworkflows.NewInlineCheckoutWorkflows(orderService))
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
	router := gin.New()
	router.Use(gin.Recovery())
	router = storefrontserver.NewRouterWithGinEngine(router, handlers, auth)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   catalogRepo,
		server: server,
	}
}

func (a *contractProviderApp) resetListings(t testing.TB) {
	t.Helper()
	listings, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, projection := range listings {
		_ = a.repo.Delete(context.Background(), projection.Entity.ID)
	}
}

func (a *contractProviderApp) seedListing(t testing.TB, id string) {
	t.Helper()
	listing, err := catalogdomain.NewListing(id, "Bella", "Golden Retriever", 2, 750, []string{"https://example.pact/listings/bella.png"})
	require.NoError(t, err)
	_, err = a.repo.Save(context.Background(), listing)
	require.NoError(t, err)
}
