package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/happypaws/happypaws-api/internal/domains/carts/adapters/memory"
	cartapp "github.com/happypaws/happypaws-api/internal/domains/carts/application"
	catalogmemory "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/happypaws/happypaws-api/internal/domains/catalog/application"
	catalogports "github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	checkoutworkflows "github.com/happypaws/happypaws-api/internal/domains/checkout/adapters/workflows"
	checkoutdomain "github.com/happypaws/happypaws-api/internal/domains/checkout/domain"
	"github.com/happypaws/happypaws-api/internal/domains/checkout/ports"
	ordermemory "github.com/happypaws/happypaws-api/internal/domains/orders/adapters/memory"
	orderapp "github.com/happypaws/happypaws-api/internal/domains/orders/application"
	ordersdomain "github.com/happypaws/happypaws-api/internal/domains/orders/domain"
)

type failingOrchestrator struct {
	inputs []ports.SubmitInput
}

func (f *failingOrchestrator) SubmitOrder(_ context.Context, input ports.SubmitInput) (string, error) {
	f.inputs = append(f.inputs, input)
	return "", errors.New("payment declined")
}

type fixture struct {
	checkout *Service
	carts    *cartapp.Service
	orders   *orderapp.Service
	ids      map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := catalogapp.NewService(catalogmemory.NewRepository(), nil)
	ids := map[string]string{}
	for _, seed := range []struct {
		name  string
		price float64
	}{
		{"Bella", 750},
		{"Max", 900},
		{"Luna", 850},
	} {
		name := seed.name
		breed := "Husky"
		age := 2
		price := seed.price
		images := []string{"http://example.com/photo.jpg"}
		proj, err := catalog.AddListing(context.Background(), catalogports.ListingMutation{
			Name:      &name,
			Breed:     &breed,
			Age:       &age,
			Price:     &price,
			ImageURLs: &images,
		})
		require.NoError(t, err)
		ids[seed.name] = proj.Entity.ID
	}

	carts := cartapp.NewService(cartmemory.NewStore(), catalog)
	orders := orderapp.NewService(ordermemory.NewRepository())
	checkout := NewService(carts, checkoutworkflows.NewInlineCheckoutWorkflows(orders))
	return &fixture{checkout: checkout, carts: carts, orders: orders, ids: ids}
}

func (f *fixture) fillCart(t *testing.T, userID string, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := f.carts.Add(context.Background(), userID, f.ids[name])
		require.NoError(t, err)
	}
}

func (f *fixture) toPaymentStep(t *testing.T, userID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.checkout.Begin(ctx, userID)
	require.NoError(t, err)
	_, err = f.checkout.SetShipping(ctx, userID, "Hanoi", "Vietnam")
	require.NoError(t, err)
	_, err = f.checkout.SelectPayment(ctx, userID, ordersdomain.PaymentMomo)
	require.NoError(t, err)
}

func TestBegin_RequiresAuthenticatedUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.Begin(context.Background(), "")
	require.ErrorIs(t, err, ports.ErrAuthRequired)
}

func TestCurrent_NoActiveFlow(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.Current(context.Background(), "u1")
	require.ErrorIs(t, err, ports.ErrNoActiveFlow)
}

func TestSubmit_PlacesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, "u1", "Bella", "Max", "Luna")
	f.toPaymentStep(t, "u1")

	flow, err := f.checkout.Submit(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, checkoutdomain.StateSucceeded, flow.State)
	require.NotEmpty(t, flow.OrderID)

	order, err := f.orders.GetByID(ctx, flow.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "u1", order.Entity.UserID)
	assert.Equal(t, []string{f.ids["Bella"], f.ids["Max"], f.ids["Luna"]}, order.Entity.ListingIDs)
	assert.InDelta(t, 2425.0, order.Entity.Total, 1e-9)
	assert.Equal(t, ordersdomain.PaymentMomo, order.Entity.PaymentMethod)
	assert.Equal(t, "Hanoi, Vietnam", order.Entity.ShippingAddress)
	assert.Equal(t, ordersdomain.StatusPending, order.Entity.Status)

	view, err := f.carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestSubmit_EmptyCart(t *testing.T) {
	f := newFixture(t)
	f.toPaymentStep(t, "u1")

	_, err := f.checkout.Submit(context.Background(), "u1")
	require.ErrorIs(t, err, ports.ErrEmptyCart)
}

func TestSubmit_WithoutShippingOrPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, "u1", "Bella")

	_, err := f.checkout.Begin(ctx, "u1")
	require.NoError(t, err)
	_, err = f.checkout.Submit(ctx, "u1")
	require.ErrorIs(t, err, checkoutdomain.ErrInvalidTransition)

	_, err = f.checkout.SetShipping(ctx, "u1", "Hanoi", "Vietnam")
	require.NoError(t, err)
	_, err = f.checkout.Submit(ctx, "u1")
	require.ErrorIs(t, err, checkoutdomain.ErrMissingPayment)
}

func TestSubmit_FailureKeepsCartAndAllowsRetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, "u1", "Bella", "Max")
	orchestrator := &failingOrchestrator{}
	f.checkout = NewService(f.carts, orchestrator)
	f.toPaymentStep(t, "u1")

	flow, err := f.checkout.Submit(ctx, "u1")
	require.Error(t, err)
	require.NotNil(t, flow)
	assert.Equal(t, checkoutdomain.StateFailed, flow.State)
	assert.Equal(t, "payment declined", flow.FailureReason)

	// The cart is untouched after a failed submission.
	view, err := f.carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)

	flow, err = f.checkout.Retry(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, checkoutdomain.StateAwaitingPayment, flow.State)
}

func TestSubmit_IdempotencyKeyIsDeterministic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, "u1", "Bella", "Max")
	orchestrator := &failingOrchestrator{}
	f.checkout = NewService(f.carts, orchestrator)
	f.toPaymentStep(t, "u1")

	_, _ = f.checkout.Submit(ctx, "u1")
	_, err := f.checkout.Retry(ctx, "u1")
	require.NoError(t, err)
	_, _ = f.checkout.Submit(ctx, "u1")

	require.Len(t, orchestrator.inputs, 2)
	assert.Equal(t, orchestrator.inputs[0].IdempotencyKey, orchestrator.inputs[1].IdempotencyKey)
}

type blockingOrchestrator struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingOrchestrator) SubmitOrder(context.Context, ports.SubmitInput) (string, error) {
	close(b.entered)
	<-b.release
	return "order-u1", nil
}

func TestSubmit_DoesNotBlockOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orchestrator := &blockingOrchestrator{entered: make(chan struct{}), release: make(chan struct{})}
	f.checkout = NewService(f.carts, orchestrator)
	f.fillCart(t, "u1", "Bella")
	f.toPaymentStep(t, "u1")

	submitDone := make(chan error, 1)
	go func() {
		_, err := f.checkout.Submit(ctx, "u1")
		submitDone <- err
	}()
	<-orchestrator.entered

	// Another user's checkout proceeds while u1's submission is in flight.
	beginDone := make(chan error, 1)
	go func() {
		_, err := f.checkout.Begin(ctx, "u2")
		beginDone <- err
	}()
	select {
	case err := <-beginDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("second user's checkout blocked behind an in-flight submission")
	}

	close(orchestrator.release)
	require.NoError(t, <-submitDone)
}

func TestReset_DiscardsFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.checkout.Begin(ctx, "u1")
	require.NoError(t, err)

	f.checkout.Reset(ctx, "u1")
	_, err = f.checkout.Current(ctx, "u1")
	require.ErrorIs(t, err, ports.ErrNoActiveFlow)
}
