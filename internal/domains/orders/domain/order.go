package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for order invariants.
var (
	ErrEmptyID              = errors.New("order id cannot be empty")
	ErrEmptyUserID          = errors.New("order user id cannot be empty")
	ErrEmptyItems           = errors.New("order must contain at least one listing")
	ErrNegativeTotal        = errors.New("order total cannot be negative")
	ErrEmptyShippingAddress = errors.New("order shipping address cannot be empty")
	ErrInvalidTransition    = errors.New("invalid order status transition")
)

// PaymentMethod identifies how the buyer pays.
type PaymentMethod string

const (
	PaymentMomo   PaymentMethod = "momo"
	PaymentPaypal PaymentMethod = "paypal"
	PaymentCard   PaymentMethod = "card"
)

// ParsePaymentMethod maps a raw value onto a known payment method.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(raw) {
	case PaymentMomo, PaymentPaypal, PaymentCard:
		return PaymentMethod(raw), nil
	default:
		return "", fmt.Errorf("unknown payment method %q", raw)
	}
}

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps a raw value onto a known order status.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("unknown order status %q", raw)
	}
}

// Order is the placed-order aggregate. Listing identifiers are frozen at
// placement time; later catalog changes do not alter an order.
type Order struct {
	ID              string
	UserID          string
	ListingIDs      []string
	Total           float64
	PaymentMethod   PaymentMethod
	ShippingAddress string
	Status          Status
}

// NewOrder validates and constructs a pending order.
func NewOrder(id, userID string, listingIDs []string, total float64, method PaymentMethod, shippingAddress string) (*Order, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if len(listingIDs) == 0 {
		return nil, ErrEmptyItems
	}
	if total < 0 {
		return nil, ErrNegativeTotal
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}
	if shippingAddress == "" {
		return nil, ErrEmptyShippingAddress
	}
	return &Order{
		ID:              id,
		UserID:          userID,
		ListingIDs:      append([]string{}, listingIDs...),
		Total:           total,
		PaymentMethod:   method,
		ShippingAddress: shippingAddress,
		Status:          StatusPending,
	}, nil
}

// UpdateStatus moves the order through its lifecycle. Pending orders may
// complete or cancel; completed and cancelled are terminal.
func (o *Order) UpdateStatus(next Status) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	if o.Status == next {
		return nil
	}
	if o.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	return nil
}

// Cancel is a convenience for the pending -> cancelled transition.
func (o *Order) Cancel() error {
	return o.UpdateStatus(StatusCancelled)
}

// Clone returns a deep copy of the aggregate.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.ListingIDs = append([]string{}, o.ListingIDs...)
	return &clone
}
