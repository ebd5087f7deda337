package mapper

import (
	"time"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// Order is the HTTP representation of a placed order.
type Order struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	ListingIDs      []string  `json:"listingIds"`
	Total           float64   `json:"total"`
	PaymentMethod   string    `json:"paymentMethod"`
	ShippingAddress string    `json:"shippingAddress"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// FromDomainOrder maps a domain aggregate into a transport Order.
func FromDomainOrder(o *domain.Order) Order {
	return Order{
		ID:              o.ID,
		UserID:          o.UserID,
		ListingIDs:      append([]string{}, o.ListingIDs...),
		Total:           o.Total,
		PaymentMethod:   string(o.PaymentMethod),
		ShippingAddress: o.ShippingAddress,
		Status:          string(o.Status),
	}
}

// FromProjection maps a projection into a transport order with metadata.
func FromProjection(p *projection.Projection[*domain.Order]) Order {
	order := FromDomainOrder(p.Entity)
	order.CreatedAt = p.Metadata.CreatedAt
	order.UpdatedAt = p.Metadata.UpdatedAt
	return order
}

// FromProjectionList maps a slice of projections into transport orders.
func FromProjectionList(list []*projection.Projection[*domain.Order]) []Order {
	result := make([]Order, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}
