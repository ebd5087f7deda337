package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersdomain "github.com/happypaws/happypaws-api/internal/domains/orders/domain"
)

func flowAtPayment(t *testing.T) *Flow {
	t.Helper()
	flow, err := NewFlow("u1")
	require.NoError(t, err)
	require.NoError(t, flow.SetShipping("Hanoi", "Vietnam"))
	return flow
}

func TestNewFlow(t *testing.T) {
	_, err := NewFlow("")
	require.ErrorIs(t, err, ErrEmptyUserID)

	flow, err := NewFlow("u1")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingShipping, flow.State)
}

func TestSetShipping_Validation(t *testing.T) {
	flow, err := NewFlow("u1")
	require.NoError(t, err)

	assert.ErrorIs(t, flow.SetShipping("  ", "Vietnam"), ErrEmptyCity)
	assert.ErrorIs(t, flow.SetShipping("Hanoi", ""), ErrEmptyCountry)
	assert.Equal(t, StateAwaitingShipping, flow.State)

	require.NoError(t, flow.SetShipping("Hanoi", "Vietnam"))
	assert.Equal(t, StateAwaitingPayment, flow.State)
	assert.Equal(t, "Hanoi, Vietnam", flow.ShippingAddress())
}

func TestSetShipping_RevisableFromPaymentStep(t *testing.T) {
	flow := flowAtPayment(t)
	require.NoError(t, flow.SetShipping("Da Nang", "Vietnam"))
	assert.Equal(t, "Da Nang, Vietnam", flow.ShippingAddress())
	assert.Equal(t, StateAwaitingPayment, flow.State)
}

func TestSelectPayment(t *testing.T) {
	flow, err := NewFlow("u1")
	require.NoError(t, err)
	assert.ErrorIs(t, flow.SelectPayment(ordersdomain.PaymentMomo), ErrInvalidTransition)

	flow = flowAtPayment(t)
	assert.Error(t, flow.SelectPayment("bitcoin"))
	require.NoError(t, flow.SelectPayment(ordersdomain.PaymentPaypal))
	assert.Equal(t, ordersdomain.PaymentPaypal, flow.PaymentMethod)
}

func TestBeginSubmit_RequiresShippingAndPayment(t *testing.T) {
	flow := flowAtPayment(t)
	assert.ErrorIs(t, flow.BeginSubmit(), ErrMissingPayment)

	require.NoError(t, flow.SelectPayment(ordersdomain.PaymentCard))
	require.NoError(t, flow.BeginSubmit())
	assert.Equal(t, StateSubmitting, flow.State)

	// No double submission from the submitting state.
	assert.ErrorIs(t, flow.BeginSubmit(), ErrInvalidTransition)
}

func TestCompleteSubmit(t *testing.T) {
	flow := flowAtPayment(t)
	require.NoError(t, flow.SelectPayment(ordersdomain.PaymentCard))
	require.NoError(t, flow.BeginSubmit())
	require.NoError(t, flow.CompleteSubmit("o1"))

	assert.Equal(t, StateSucceeded, flow.State)
	assert.Equal(t, "o1", flow.OrderID)
	assert.ErrorIs(t, flow.Retry(), ErrInvalidTransition)
}

func TestFailSubmit_ThenRetryResumesAtPayment(t *testing.T) {
	flow := flowAtPayment(t)
	require.NoError(t, flow.SelectPayment(ordersdomain.PaymentMomo))
	require.NoError(t, flow.BeginSubmit())
	require.NoError(t, flow.FailSubmit("payment declined"))

	assert.Equal(t, StateFailed, flow.State)
	assert.Equal(t, "payment declined", flow.FailureReason)

	require.NoError(t, flow.Retry())
	assert.Equal(t, StateAwaitingPayment, flow.State)
	assert.Empty(t, flow.FailureReason)
	// Shipping and payment survive the retry.
	assert.Equal(t, "Hanoi, Vietnam", flow.ShippingAddress())
	assert.Equal(t, ordersdomain.PaymentMomo, flow.PaymentMethod)
}
