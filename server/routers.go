// Package storefrontserver exposes the storefront HTTP API over gin.
package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiHandleFunctions groups the per-context HTTP APIs for router assembly.
type ApiHandleFunctions struct {
	CatalogAPI   CatalogAPI
	CartAPI      CartAPI
	FavoritesAPI FavoritesAPI
	CheckoutAPI  CheckoutAPI
	OrderAPI     OrderAPI
	UserAPI      UserAPI
}

// Route binds an HTTP method and path pattern to a handler chain.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc []gin.HandlerFunc
}

// NewRouter returns a new gin engine with the storefront routes mounted.
func NewRouter(handlers ApiHandleFunctions, auth *AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	return NewRouterWithGinEngine(router, handlers, auth)
}

// NewRouterWithGinEngine mounts the storefront routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handlers ApiHandleFunctions, auth *AuthMiddleware) *gin.Engine {
	router.Use(auth.Authenticate())
	for _, route := range getRoutes(handlers, auth) {
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc...)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc...)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc...)
		}
	}
	return router
}

func getRoutes(handlers ApiHandleFunctions, auth *AuthMiddleware) []Route {
	requireUser := auth.RequireUser()
	requireAdmin := auth.RequireAdmin()
	return []Route{
		// Catalog browsing is public; management requires the admin role.
		{http.MethodGet, "/v1/listings", handler(handlers.CatalogAPI.SearchListings)},
		{http.MethodGet, "/v1/listings/count", handler(handlers.CatalogAPI.CountListings)},
		{http.MethodGet, "/v1/listings/stream", handler(requireUser, handlers.CatalogAPI.StreamListings)},
		{http.MethodGet, "/v1/listings/:listingId", handler(handlers.CatalogAPI.GetListingById)},
		{http.MethodPost, "/v1/listings", handler(requireAdmin, handlers.CatalogAPI.AddListing)},
		{http.MethodPut, "/v1/listings/:listingId", handler(requireAdmin, handlers.CatalogAPI.UpdateListing)},
		{http.MethodDelete, "/v1/listings/:listingId", handler(requireAdmin, handlers.CatalogAPI.DeleteListing)},

		// Cart reads answer anonymously with an empty cart; mutations
		// require a user.
		{http.MethodGet, "/v1/cart", handler(handlers.CartAPI.GetCart)},
		{http.MethodPost, "/v1/cart/items", handler(requireUser, handlers.CartAPI.AddCartItem)},
		{http.MethodDelete, "/v1/cart/items/:listingId", handler(requireUser, handlers.CartAPI.RemoveCartItem)},
		{http.MethodDelete, "/v1/cart", handler(requireUser, handlers.CartAPI.ClearCart)},
		{http.MethodGet, "/v1/cart/quote", handler(handlers.CartAPI.QuoteCart)},

		{http.MethodGet, "/v1/favorites", handler(requireUser, handlers.FavoritesAPI.ListFavorites)},
		{http.MethodGet, "/v1/favorites/stream", handler(requireUser, handlers.FavoritesAPI.StreamFavorites)},
		{http.MethodPost, "/v1/favorites/:listingId/toggle", handler(requireUser, handlers.FavoritesAPI.ToggleFavorite)},
		{http.MethodPut, "/v1/favorites/:listingId", handler(requireUser, handlers.FavoritesAPI.AddFavorite)},
		{http.MethodDelete, "/v1/favorites/:listingId", handler(requireUser, handlers.FavoritesAPI.RemoveFavorite)},

		{http.MethodPost, "/v1/checkout", handler(requireUser, handlers.CheckoutAPI.BeginCheckout)},
		{http.MethodGet, "/v1/checkout", handler(requireUser, handlers.CheckoutAPI.GetCheckout)},
		{http.MethodPut, "/v1/checkout/shipping", handler(requireUser, handlers.CheckoutAPI.SetShipping)},
		{http.MethodPut, "/v1/checkout/payment", handler(requireUser, handlers.CheckoutAPI.SelectPayment)},
		{http.MethodPost, "/v1/checkout/submit", handler(requireUser, handlers.CheckoutAPI.SubmitCheckout)},
		{http.MethodPost, "/v1/checkout/retry", handler(requireUser, handlers.CheckoutAPI.RetryCheckout)},
		{http.MethodDelete, "/v1/checkout", handler(requireUser, handlers.CheckoutAPI.ResetCheckout)},

		{http.MethodGet, "/v1/orders", handler(requireUser, handlers.OrderAPI.ListOrders)},
		{http.MethodGet, "/v1/orders/:orderId", handler(requireUser, handlers.OrderAPI.GetOrderById)},
		{http.MethodPost, "/v1/orders/:orderId/cancel", handler(requireUser, handlers.OrderAPI.CancelOrder)},
		{http.MethodPut, "/v1/orders/:orderId/status", handler(requireAdmin, handlers.OrderAPI.UpdateOrderStatus)},
		{http.MethodDelete, "/v1/orders/:orderId", handler(requireAdmin, handlers.OrderAPI.DeleteOrder)},

		{http.MethodPost, "/v1/users/register", handler(handlers.UserAPI.RegisterUser)},
		{http.MethodPost, "/v1/users/login", handler(handlers.UserAPI.LoginUser)},
		{http.MethodPost, "/v1/users/logout", handler(requireUser, handlers.UserAPI.LogoutUser)},
		{http.MethodGet, "/v1/users/me", handler(requireUser, handlers.UserAPI.GetCurrentUser)},
		{http.MethodGet, "/v1/users", handler(requireAdmin, handlers.UserAPI.ListUsers)},
		{http.MethodDelete, "/v1/users/:userId", handler(requireUser, handlers.UserAPI.DeleteUser)},
	}
}

func handler(chain ...gin.HandlerFunc) []gin.HandlerFunc {
	return chain
}
