package domain

import (
	"errors"
	"fmt"
	"strings"

	ordersdomain "github.com/happypaws/happypaws-api/internal/domains/orders/domain"
)

// Checkout flow errors.
var (
	ErrEmptyUserID       = errors.New("checkout user id cannot be empty")
	ErrEmptyCity         = errors.New("shipping city cannot be empty")
	ErrEmptyCountry      = errors.New("shipping country cannot be empty")
	ErrMissingShipping   = errors.New("shipping info not provided")
	ErrMissingPayment    = errors.New("payment method not selected")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// State is a checkout flow phase. The flow advances strictly forward until
// submission, which either succeeds terminally or falls back to the payment
// step for a retry.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingShipping State = "awaiting_shipping_info"
	StateAwaitingPayment  State = "awaiting_payment"
	StateSubmitting       State = "submitting"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// Flow is one user's progress through checkout. It is not persisted across
// restarts; an interrupted checkout starts over from the cart.
type Flow struct {
	UserID          string
	State           State
	ShippingCity    string
	ShippingCountry string
	PaymentMethod   ordersdomain.PaymentMethod
	OrderID         string
	FailureReason   string
}

// NewFlow starts a checkout at the shipping step.
func NewFlow(userID string) (*Flow, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return &Flow{UserID: userID, State: StateAwaitingShipping}, nil
}

// SetShipping records the destination and advances to the payment step.
// Allowed while gathering shipping or revising it from the payment step.
func (f *Flow) SetShipping(city, country string) error {
	if f.State != StateAwaitingShipping && f.State != StateAwaitingPayment {
		return f.transitionError("set shipping")
	}
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if city == "" {
		return ErrEmptyCity
	}
	if country == "" {
		return ErrEmptyCountry
	}
	f.ShippingCity = city
	f.ShippingCountry = country
	f.State = StateAwaitingPayment
	return nil
}

// SelectPayment records the payment method at the payment step.
func (f *Flow) SelectPayment(method ordersdomain.PaymentMethod) error {
	if f.State != StateAwaitingPayment {
		return f.transitionError("select payment")
	}
	if _, err := ordersdomain.ParsePaymentMethod(string(method)); err != nil {
		return err
	}
	f.PaymentMethod = method
	return nil
}

// BeginSubmit locks the flow for submission once shipping and payment are in
// place.
func (f *Flow) BeginSubmit() error {
	if f.State != StateAwaitingPayment {
		return f.transitionError("submit")
	}
	if f.ShippingCity == "" || f.ShippingCountry == "" {
		return ErrMissingShipping
	}
	if f.PaymentMethod == "" {
		return ErrMissingPayment
	}
	f.State = StateSubmitting
	return nil
}

// CompleteSubmit records the placed order and finishes the flow.
func (f *Flow) CompleteSubmit(orderID string) error {
	if f.State != StateSubmitting {
		return f.transitionError("complete submit")
	}
	f.OrderID = orderID
	f.FailureReason = ""
	f.State = StateSucceeded
	return nil
}

// FailSubmit records the failure. The flow keeps shipping and payment so a
// retry resumes at the payment step.
func (f *Flow) FailSubmit(reason string) error {
	if f.State != StateSubmitting {
		return f.transitionError("fail submit")
	}
	f.FailureReason = reason
	f.State = StateFailed
	return nil
}

// Retry moves a failed flow back to the payment step.
func (f *Flow) Retry() error {
	if f.State != StateFailed {
		return f.transitionError("retry")
	}
	f.FailureReason = ""
	f.State = StateAwaitingPayment
	return nil
}

// ShippingAddress renders the destination as "city, country".
func (f *Flow) ShippingAddress() string {
	if f.ShippingCity == "" || f.ShippingCountry == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s", f.ShippingCity, f.ShippingCountry)
}

// Clone returns a copy of the flow.
func (f *Flow) Clone() *Flow {
	if f == nil {
		return nil
	}
	clone := *f
	return &clone
}

func (f *Flow) transitionError(action string) error {
	return fmt.Errorf("%w: cannot %s in state %s", ErrInvalidTransition, action, f.State)
}
