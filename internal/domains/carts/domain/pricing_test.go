package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice_EmptyCart(t *testing.T) {
	quote := Price(nil)
	assert.Equal(t, Quote{}, quote)
}

func TestPrice_BelowDiscountThreshold(t *testing.T) {
	quote := Price([]float64{750, 900})
	assert.InDelta(t, 1650.0, quote.Subtotal, 1e-9)
	assert.InDelta(t, 115.5, quote.Tax, 1e-9)
	assert.Zero(t, quote.Discount)
	assert.InDelta(t, 1765.5, quote.Total, 1e-9)
}

func TestPrice_AtDiscountThreshold(t *testing.T) {
	quote := Price([]float64{750, 900, 850})
	assert.InDelta(t, 2500.0, quote.Subtotal, 1e-9)
	assert.InDelta(t, 175.0, quote.Tax, 1e-9)
	assert.InDelta(t, 250.0, quote.Discount, 1e-9)
	assert.InDelta(t, 2425.0, quote.Total, 1e-9)
}

func TestPrice_DiscountComputedFromRawSubtotal(t *testing.T) {
	quote := Price([]float64{100, 200, 300, 400})
	assert.InDelta(t, 1000.0, quote.Subtotal, 1e-9)
	// Both derivations read the subtotal, not each other.
	assert.InDelta(t, quote.Subtotal*TaxRate, quote.Tax, 1e-9)
	assert.InDelta(t, quote.Subtotal*VolumeDiscountRate, quote.Discount, 1e-9)
	assert.InDelta(t, quote.Subtotal+quote.Tax-quote.Discount, quote.Total, 1e-9)
}
