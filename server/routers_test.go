package storefrontserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/happypaws/happypaws-api/internal/domains/carts/adapters/memory"
	cartapp "github.com/happypaws/happypaws-api/internal/domains/carts/application"
	catalogmemory "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/happypaws/happypaws-api/internal/domains/catalog/application"
	checkoutworkflows "github.com/happypaws/happypaws-api/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/happypaws/happypaws-api/internal/domains/checkout/application"
	favoritesmemory "github.com/happypaws/happypaws-api/internal/domains/favorites/adapters/memory"
	favoritesapp "github.com/happypaws/happypaws-api/internal/domains/favorites/application"
	ordersmemory "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/memory"
	ordersapp "github.com/happypaws/happypaws-api/internal/domains/orders/application"
	usersmemory "github.com/happypaws/happypaws-api/internal/domains/users/adapters/memory"
	usersapp "github.com/happypaws/happypaws-api/internal/domains/users/application"
	storefrontserver "github.com/happypaws/happypaws-api/server"
)

func newTestEngine(t *testing.T, middleware ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogService := catalogapp.NewService(catalogmemory.NewRepository(), nil)
	favoritesService := favoritesapp.NewService(favoritesmemory.NewStore(), catalogService)
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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return storefrontserver.NewRouterWithGinEngine(router, handlers, storefrontserver.NewAuthMiddleware(userService))
}

func TestRouter_RunsMiddlewareMountedBeforeRoutes(t *testing.T) {
	var sawRequest bool
	marker := func(c *gin.Context) {
		sawRequest = true
		c.Next()
	}
	router := newTestEngine(t, marker)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/listings?tab=All", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, sawRequest, "middleware attached before mounting must run for mounted routes")
}

func TestRouter_AnonymousCartReadIsEmpty(t *testing.T) {
	router := newTestEngine(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var view storefrontserver.CartView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Quote.Total)
	assert.Zero(t, view.Version)
}

func TestRouter_AnonymousCartMutationIsRejected(t *testing.T) {
	router := newTestEngine(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(`{"listingId":"d1"}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	var problem struct {
		Title      string `json:"title"`
		Extensions struct {
			LoginURL string `json:"loginUrl"`
		} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	assert.Equal(t, storefrontserver.LoginPath, problem.Extensions.LoginURL)
}
