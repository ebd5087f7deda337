package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/happypaws/happypaws-api/internal/domains/carts/adapters/memory"
	"github.com/happypaws/happypaws-api/internal/domains/carts/ports"
	catalogmemory "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/happypaws/happypaws-api/internal/domains/catalog/application"
	catalogports "github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
)

type failingStore struct {
	inner ports.Store
	fail  bool
}

func (f *failingStore) Get(ctx context.Context, userID string) ([]string, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	return f.inner.Get(ctx, userID)
}

func (f *failingStore) AddItem(ctx context.Context, userID, listingID string) error {
	if f.fail {
		return errors.New("store unavailable")
	}
	return f.inner.AddItem(ctx, userID, listingID)
}

func (f *failingStore) RemoveItem(ctx context.Context, userID, listingID string) error {
	if f.fail {
		return errors.New("store unavailable")
	}
	return f.inner.RemoveItem(ctx, userID, listingID)
}

func (f *failingStore) Replace(ctx context.Context, userID string, listingIDs []string) error {
	if f.fail {
		return errors.New("store unavailable")
	}
	return f.inner.Replace(ctx, userID, listingIDs)
}

func seedCatalog(t *testing.T) (*catalogapp.Service, map[string]string) {
	t.Helper()
	svc := catalogapp.NewService(catalogmemory.NewRepository(), nil)
	ids := map[string]string{}
	seeds := []struct {
		name  string
		price float64
	}{
		{"Bella", 750},
		{"Max", 900},
		{"Luna", 850},
	}
	for _, seed := range seeds {
		name := seed.name
		breed := "Golden Retriever"
		age := 1
		price := seed.price
		images := []string{"http://example.com/photo.jpg"}
		proj, err := svc.AddListing(context.Background(), catalogports.ListingMutation{
			Name:      &name,
			Breed:     &breed,
			Age:       &age,
			Price:     &price,
			ImageURLs: &images,
		})
		require.NoError(t, err)
		ids[seed.name] = proj.Entity.ID
	}
	return svc, ids
}

func TestMutations_RequireAuthenticatedUser(t *testing.T) {
	catalog, _ := seedCatalog(t)
	svc := NewService(cartmemory.NewStore(), catalog)

	_, err := svc.Add(context.Background(), "", "d1")
	require.ErrorIs(t, err, ports.ErrAuthRequired)

	_, err = svc.Remove(context.Background(), "", "d1")
	require.ErrorIs(t, err, ports.ErrAuthRequired)

	err = svc.Clear(context.Background(), "")
	require.ErrorIs(t, err, ports.ErrAuthRequired)
}

func TestReads_AnonymousSeeEmptyCart(t *testing.T) {
	catalog, _ := seedCatalog(t)
	svc := NewService(cartmemory.NewStore(), catalog)
	ctx := context.Background()

	view, err := svc.Get(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Quote.Total)
	assert.Zero(t, view.Version)

	ids, err := svc.ItemIDs(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, ids)

	quote, err := svc.Quote(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, quote.Total)
}

func TestAdd_IsIdempotent(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(cartmemory.NewStore(), catalog)
	ctx := context.Background()

	first, err := svc.Add(ctx, "u1", ids["Bella"])
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	second, err := svc.Add(ctx, "u1", ids["Bella"])
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, first.Version, second.Version)
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(cartmemory.NewStore(), catalog)
	ctx := context.Background()

	added, err := svc.Add(ctx, "u1", ids["Bella"])
	require.NoError(t, err)

	view, err := svc.Remove(ctx, "u1", "missing")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, added.Version, view.Version)

	view, err = svc.Remove(ctx, "u1", ids["Bella"])
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestQuote_AppliesVolumeDiscount(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(cartmemory.NewStore(), catalog)
	ctx := context.Background()

	for _, name := range []string{"Bella", "Max", "Luna"} {
		_, err := svc.Add(ctx, "u1", ids[name])
		require.NoError(t, err)
	}

	quote, err := svc.Quote(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 2500.0, quote.Subtotal, 1e-9)
	assert.InDelta(t, 175.0, quote.Tax, 1e-9)
	assert.InDelta(t, 250.0, quote.Discount, 1e-9)
	assert.InDelta(t, 2425.0, quote.Total, 1e-9)
}

func TestAdd_FailedWriteLeavesCartUnchanged(t *testing.T) {
	catalog, ids := seedCatalog(t)
	store := &failingStore{inner: cartmemory.NewStore()}
	svc := NewService(store, catalog)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", ids["Bella"])
	require.NoError(t, err)

	store.fail = true
	_, err = svc.Add(ctx, "u1", ids["Max"])
	require.ErrorIs(t, err, ports.ErrPersistence)

	store.fail = false
	view, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, ids["Bella"], view.Items[0].Entity.ID)
}

func TestGet_LoadsRemoteStateOnFirstAccess(t *testing.T) {
	catalog, ids := seedCatalog(t)
	store := cartmemory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.AddItem(ctx, "u1", ids["Max"]))
	require.NoError(t, store.AddItem(ctx, "u1", ids["Luna"]))

	svc := NewService(store, catalog)
	view, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, ids["Max"], view.Items[0].Entity.ID)
	assert.Equal(t, ids["Luna"], view.Items[1].Entity.ID)
}

func TestView_DropsUnresolvableListings(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(cartmemory.NewStore(), catalog)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", ids["Bella"])
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", ids["Max"])
	require.NoError(t, err)

	require.NoError(t, catalog.RemoveListing(ctx, ids["Max"]))

	view, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, ids["Bella"], view.Items[0].Entity.ID)
	assert.InDelta(t, 750.0, view.Quote.Subtotal, 1e-9)

	// Membership still carries the unresolvable identifier.
	memberIDs, err := svc.ItemIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, memberIDs, 2)
}

func TestClear_EmptiesStoreAndCart(t *testing.T) {
	catalog, ids := seedCatalog(t)
	store := cartmemory.NewStore()
	svc := NewService(store, catalog)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", ids["Bella"])
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "u1"))

	view, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	stored, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
