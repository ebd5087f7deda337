package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartsports "github.com/happypaws/happypaws-api/internal/domains/carts/ports"
	catalogapp "github.com/happypaws/happypaws-api/internal/domains/catalog/application"
	catalogports "github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	checkoutdomain "github.com/happypaws/happypaws-api/internal/domains/checkout/domain"
	checkoutports "github.com/happypaws/happypaws-api/internal/domains/checkout/ports"
	favoritesports "github.com/happypaws/happypaws-api/internal/domains/favorites/ports"
	ordersapp "github.com/happypaws/happypaws-api/internal/domains/orders/application"
	ordersdomain "github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	ordersports "github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	apierrors "github.com/happypaws/happypaws-api/internal/shared/errors"
)

// Per-context responders translate service errors into RFC 7807 problems.
var (
	catalogResponder   = apierrors.NewChainedResponder("", mapCatalogError)
	cartResponder      = apierrors.NewChainedResponder("", mapAuthError, mapCartError, mapCatalogError)
	favoritesResponder = apierrors.NewChainedResponder("", mapAuthError, mapCatalogError)
	checkoutResponder  = apierrors.NewChainedResponder("", mapAuthError, mapCheckoutError, mapCartError)
	orderResponder     = apierrors.NewChainedResponder("", mapOrderError)
)

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapAuthError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, cartsports.ErrAuthRequired) ||
		errors.Is(err, favoritesports.ErrAuthRequired) ||
		errors.Is(err, checkoutports.ErrAuthRequired) {
		return apierrors.NewAuthRequiredProblem(LoginPath), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCartError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, cartsports.ErrPersistence) {
		return apierrors.ErrPersistence.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCheckoutError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, checkoutports.ErrNoActiveFlow):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, checkoutports.ErrEmptyCart):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, checkoutdomain.ErrEmptyCity),
		errors.Is(err, checkoutdomain.ErrEmptyCountry),
		errors.Is(err, checkoutdomain.ErrMissingShipping),
		errors.Is(err, checkoutdomain.ErrMissingPayment):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, checkoutdomain.ErrInvalidTransition):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersdomain.ErrInvalidTransition):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondError keeps bind-failure call sites terse while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrAuthRequired.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	apierrors.Respond(c, problem)
}
