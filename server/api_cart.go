package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsdomain "github.com/happypaws/happypaws-api/internal/domains/carts/domain"
	cartsports "github.com/happypaws/happypaws-api/internal/domains/carts/ports"
	listingmapper "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/http/mapper"
)

// CartAPI wires HTTP transport with the cart ledger service.
type CartAPI struct {
	service cartsports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartsports.Service) CartAPI {
	return CartAPI{service: service}
}

// CartView is the HTTP representation of a materialized cart.
type CartView struct {
	Items   []listingmapper.Listing `json:"items"`
	Quote   cartsdomain.Quote       `json:"quote"`
	Version uint64                  `json:"version"`
}

type cartItemPayload struct {
	ListingID string `json:"listingId" binding:"required"`
}

func fromCartView(view *cartsports.View) CartView {
	return CartView{
		Items:   listingmapper.FromProjectionList(view.Items),
		Quote:   view.Quote,
		Version: view.Version,
	}
}

// Get /v1/cart
// Fetch the current user's cart with resolved listings and quote
func (api *CartAPI) GetCart(c *gin.Context) {
	view, err := api.service.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		cartResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCartView(view))
}

// Post /v1/cart/items
// Add a listing to the cart
func (api *CartAPI) AddCartItem(c *gin.Context) {
	var payload cartItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := api.service.Add(c.Request.Context(), currentUserID(c), payload.ListingID)
	if err != nil {
		cartResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCartView(view))
}

// Delete /v1/cart/items/:listingId
// Remove a listing from the cart
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	view, err := api.service.Remove(c.Request.Context(), currentUserID(c), c.Param("listingId"))
	if err != nil {
		cartResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCartView(view))
}

// Delete /v1/cart
// Empty the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context(), currentUserID(c)); err != nil {
		cartResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Get /v1/cart/quote
// Price the cart without materializing listings
func (api *CartAPI) QuoteCart(c *gin.Context) {
	quote, err := api.service.Quote(c.Request.Context(), currentUserID(c))
	if err != nil {
		cartResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
