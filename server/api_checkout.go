package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutdomain "github.com/happypaws/happypaws-api/internal/domains/checkout/domain"
	checkoutports "github.com/happypaws/happypaws-api/internal/domains/checkout/ports"
	ordersdomain "github.com/happypaws/happypaws-api/internal/domains/orders/domain"
)

// CheckoutAPI wires HTTP transport with the checkout flow service.
type CheckoutAPI struct {
	service checkoutports.Service
}

// NewCheckoutAPI creates a CheckoutAPI backed by the provided service.
func NewCheckoutAPI(service checkoutports.Service) CheckoutAPI {
	return CheckoutAPI{service: service}
}

// CheckoutFlow is the HTTP representation of a checkout in progress.
type CheckoutFlow struct {
	State           string `json:"state"`
	ShippingCity    string `json:"shippingCity,omitempty"`
	ShippingCountry string `json:"shippingCountry,omitempty"`
	ShippingAddress string `json:"shippingAddress,omitempty"`
	PaymentMethod   string `json:"paymentMethod,omitempty"`
	OrderID         string `json:"orderId,omitempty"`
	FailureReason   string `json:"failureReason,omitempty"`
}

type shippingPayload struct {
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
}

type paymentPayload struct {
	Method string `json:"method" binding:"required"`
}

func fromFlow(f *checkoutdomain.Flow) CheckoutFlow {
	flow := CheckoutFlow{
		State:           string(f.State),
		ShippingCity:    f.ShippingCity,
		ShippingCountry: f.ShippingCountry,
		PaymentMethod:   string(f.PaymentMethod),
		OrderID:         f.OrderID,
		FailureReason:   f.FailureReason,
	}
	if f.ShippingCity != "" && f.ShippingCountry != "" {
		flow.ShippingAddress = f.ShippingAddress()
	}
	return flow
}

// Post /v1/checkout
// Start a checkout flow for the current user
func (api *CheckoutAPI) BeginCheckout(c *gin.Context) {
	flow, err := api.service.Begin(c.Request.Context(), currentUserID(c))
	if err != nil {
		checkoutResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromFlow(flow))
}

// Get /v1/checkout
// Fetch the current checkout flow
func (api *CheckoutAPI) GetCheckout(c *gin.Context) {
	flow, err := api.service.Current(c.Request.Context(), currentUserID(c))
	if err != nil {
		checkoutResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromFlow(flow))
}

// Put /v1/checkout/shipping
// Record the shipping destination
func (api *CheckoutAPI) SetShipping(c *gin.Context) {
	var payload shippingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	flow, err := api.service.SetShipping(c.Request.Context(), currentUserID(c), payload.City, payload.Country)
	if err != nil {
		checkoutResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromFlow(flow))
}

// Put /v1/checkout/payment
// Select the payment method
func (api *CheckoutAPI) SelectPayment(c *gin.Context) {
	var payload paymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	method, err := ordersdomain.ParsePaymentMethod(payload.Method)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	flow, err := api.service.SelectPayment(c.Request.Context(), currentUserID(c), method)
	if err != nil {
		checkoutResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromFlow(flow))
}

// Post /v1/checkout/submit
// Place the order from the cart
func (api *CheckoutAPI) SubmitCheckout(c *gin.Context) {
	flow, err := api.service.Submit(c.Request.Context(), currentUserID(c))
	if err != nil {
		if flow != nil && flow.State == checkoutdomain.StateFailed {
			c.JSON(http.StatusBadGateway, fromFlow(flow))
			return
		}
		checkoutResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromFlow(flow))
}

// Post /v1/checkout/retry
// Return a failed flow to the payment step
func (api *CheckoutAPI) RetryCheckout(c *gin.Context) {
	flow, err := api.service.Retry(c.Request.Context(), currentUserID(c))
	if err != nil {
		checkoutResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromFlow(flow))
}

// Delete /v1/checkout
// Abandon the current checkout flow
func (api *CheckoutAPI) ResetCheckout(c *gin.Context) {
	api.service.Reset(c.Request.Context(), currentUserID(c))
	c.Status(http.StatusOK)
}
