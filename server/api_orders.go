package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	ordersports "github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	apierrors "github.com/happypaws/happypaws-api/internal/shared/errors"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// OrderAPI wires HTTP transport with the orders service.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

type orderStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// Get /v1/orders
// List the current user's orders, newest first. Admins may pass all=true.
func (api *OrderAPI) ListOrders(c *gin.Context) {
	if isTruthyParam(c.Query("all")) {
		user, ok := currentUser(c)
		if !ok || !user.IsAdmin() {
			apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("admin role required"))
			return
		}
		orders, err := api.service.List(c.Request.Context())
		if err != nil {
			orderResponder.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ordermapper.FromProjectionList(orders))
		return
	}
	orders, err := api.service.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		orderResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjectionList(orders))
}

// Get /v1/orders/:orderId
// Fetch a single order; owners and admins only
func (api *OrderAPI) GetOrderById(c *gin.Context) {
	order, ok := api.loadOwnedOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjection(order))
}

// Post /v1/orders/:orderId/cancel
// Cancel a pending order
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	if _, ok := api.loadOwnedOrder(c); !ok {
		return
	}
	cancelled, err := api.service.Cancel(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		orderResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjection(cancelled))
}

// Put /v1/orders/:orderId/status
// Transition a pending order; admin operation
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	var payload orderStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	status, err := ordersdomain.ParseStatus(payload.Status)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateStatus(c.Request.Context(), c.Param("orderId"), status)
	if err != nil {
		orderResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjection(updated))
}

// Delete /v1/orders/:orderId
// Remove an order record; admin operation
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("orderId")); err != nil {
		orderResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// loadOwnedOrder fetches the order and enforces that the caller owns it or is
// an admin. Non-owners receive a not-found response so order ids do not leak.
func (api *OrderAPI) loadOwnedOrder(c *gin.Context) (*projection.Projection[*ordersdomain.Order], bool) {
	id := c.Param("orderId")
	loaded, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		orderResponder.RespondError(c, err)
		return nil, false
	}
	user, authed := currentUser(c)
	if !authed {
		respondAuthRequired(c)
		return nil, false
	}
	if loaded.Entity.UserID != user.ID && !user.IsAdmin() {
		orderResponder.RespondError(c, ordersports.ErrNotFound)
		return nil, false
	}
	return loaded, true
}
