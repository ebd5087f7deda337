package application

import (
	"errors"
	"fmt"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated an order invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyID) ||
		errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrEmptyItems) ||
		errors.Is(err, domain.ErrNegativeTotal) ||
		errors.Is(err, domain.ErrEmptyShippingAddress) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
