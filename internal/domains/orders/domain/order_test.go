package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("o1", "u1", []string{"d1", "d2"}, 1765.5, PaymentCard, "Hanoi, Vietnam")
	require.NoError(t, err)
	return order
}

func TestNewOrder_Invariants(t *testing.T) {
	_, err := NewOrder("", "u1", []string{"d1"}, 10, PaymentCard, "Hanoi, Vietnam")
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = NewOrder("o1", "", []string{"d1"}, 10, PaymentCard, "Hanoi, Vietnam")
	assert.ErrorIs(t, err, ErrEmptyUserID)

	_, err = NewOrder("o1", "u1", nil, 10, PaymentCard, "Hanoi, Vietnam")
	assert.ErrorIs(t, err, ErrEmptyItems)

	_, err = NewOrder("o1", "u1", []string{"d1"}, -1, PaymentCard, "Hanoi, Vietnam")
	assert.ErrorIs(t, err, ErrNegativeTotal)

	_, err = NewOrder("o1", "u1", []string{"d1"}, 10, "bitcoin", "Hanoi, Vietnam")
	assert.Error(t, err)

	_, err = NewOrder("o1", "u1", []string{"d1"}, 10, PaymentCard, "")
	assert.ErrorIs(t, err, ErrEmptyShippingAddress)
}

func TestNewOrder_StartsPending(t *testing.T) {
	order := validOrder(t)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, []string{"d1", "d2"}, order.ListingIDs)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	order := validOrder(t)
	require.NoError(t, order.UpdateStatus(StatusCompleted))
	assert.Equal(t, StatusCompleted, order.Status)

	// Terminal states reject further moves.
	assert.ErrorIs(t, order.UpdateStatus(StatusCancelled), ErrInvalidTransition)
	// Same-state updates are no-ops.
	assert.NoError(t, order.UpdateStatus(StatusCompleted))
}

func TestCancel_OnlyFromPending(t *testing.T) {
	order := validOrder(t)
	require.NoError(t, order.Cancel())
	assert.Equal(t, StatusCancelled, order.Status)

	completed := validOrder(t)
	require.NoError(t, completed.UpdateStatus(StatusCompleted))
	assert.ErrorIs(t, completed.Cancel(), ErrInvalidTransition)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"momo", "paypal", "card"} {
		method, err := ParsePaymentMethod(raw)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod(raw), method)
	}
	_, err := ParsePaymentMethod("cash")
	assert.Error(t, err)
}

func TestClone_IsIndependent(t *testing.T) {
	order := validOrder(t)
	clone := order.Clone()
	clone.ListingIDs[0] = "changed"
	assert.Equal(t, "d1", order.ListingIDs[0])
}
