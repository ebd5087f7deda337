package domain

// Pricing policy applied to a cart quote. The discount rewards adopting
// several dogs at once.
const (
	// TaxRate is applied to the full subtotal.
	TaxRate = 0.07
	// VolumeDiscountRate is applied to the subtotal once the cart qualifies.
	VolumeDiscountRate = 0.10
	// VolumeDiscountMinItems is the inclusive item threshold for the discount.
	VolumeDiscountMinItems = 3
)

// Quote breaks a cart total down into its derived components.
// Total = Subtotal + Tax - Discount.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Price derives a quote from item prices. Tax and discount are both computed
// from the raw subtotal, never from each other.
func Price(prices []float64) Quote {
	var subtotal float64
	for _, p := range prices {
		subtotal += p
	}
	quote := Quote{
		Subtotal: subtotal,
		Tax:      subtotal * TaxRate,
	}
	if len(prices) >= VolumeDiscountMinItems {
		quote.Discount = subtotal * VolumeDiscountRate
	}
	quote.Total = quote.Subtotal + quote.Tax - quote.Discount
	return quote
}
