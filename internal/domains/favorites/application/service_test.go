package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/happypaws/happypaws-api/internal/domains/catalog/application"
	catalogports "github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	favmemory "github.com/happypaws/happypaws-api/internal/domains/favorites/adapters/memory"
	"github.com/happypaws/happypaws-api/internal/domains/favorites/ports"
)

func seedCatalog(t *testing.T) (*catalogapp.Service, map[string]string) {
	t.Helper()
	svc := catalogapp.NewService(catalogmemory.NewRepository(), nil)
	ids := map[string]string{}
	for _, seed := range []struct {
		name  string
		price float64
	}{
		{"Bella", 750},
		{"Max", 900},
	} {
		name := seed.name
		breed := "Beagle"
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

func TestFavorites_RequireAuthenticatedUser(t *testing.T) {
	catalog, _ := seedCatalog(t)
	svc := NewService(favmemory.NewStore(), catalog)

	_, err := svc.IDs(context.Background(), "")
	require.ErrorIs(t, err, ports.ErrAuthRequired)

	err = svc.Add(context.Background(), "", "d1")
	require.ErrorIs(t, err, ports.ErrAuthRequired)
}

func TestToggle_FlipsMark(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(favmemory.NewStore(), catalog)
	ctx := context.Background()

	marked, err := svc.Toggle(ctx, "u1", ids["Bella"])
	require.NoError(t, err)
	assert.True(t, marked)

	set, err := svc.FavoriteSet(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, set.Contains(ids["Bella"]))

	marked, err = svc.Toggle(ctx, "u1", ids["Bella"])
	require.NoError(t, err)
	assert.False(t, marked)

	set, err = svc.FavoriteSet(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, set.Contains(ids["Bella"]))
}

func TestList_MaterializesInMarkOrder(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(favmemory.NewStore(), catalog)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", ids["Max"]))
	require.NoError(t, svc.Add(ctx, "u1", ids["Bella"]))

	result, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Max", result[0].Entity.Name)
	assert.Equal(t, "Bella", result[1].Entity.Name)
}

func TestSubscribe_DeliversFullSetOnMutation(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(favmemory.NewStore(), catalog)
	ctx := context.Background()

	ch, cancel := svc.Subscribe("u1")
	defer cancel()

	require.NoError(t, svc.Add(ctx, "u1", ids["Bella"]))

	select {
	case set := <-ch:
		assert.True(t, set.Contains(ids["Bella"]))
		assert.Len(t, set, 1)
	case <-time.After(time.Second):
		t.Fatal("expected a favorites notification")
	}
}

func TestSubscribe_SlowConsumerGetsLatestSet(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(favmemory.NewStore(), catalog)
	ctx := context.Background()

	ch, cancel := svc.Subscribe("u1")
	defer cancel()

	require.NoError(t, svc.Add(ctx, "u1", ids["Bella"]))
	require.NoError(t, svc.Add(ctx, "u1", ids["Max"]))

	select {
	case set := <-ch:
		assert.Len(t, set, 2)
	case <-time.After(time.Second):
		t.Fatal("expected a favorites notification")
	}
}

func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(favmemory.NewStore(), catalog)
	ctx := context.Background()

	ch, cancel := svc.Subscribe("u1")
	cancel()

	require.NoError(t, svc.Add(ctx, "u1", ids["Bella"]))

	_, open := <-ch
	assert.False(t, open)
}

func TestSubscribe_OtherUsersAreNotNotified(t *testing.T) {
	catalog, ids := seedCatalog(t)
	svc := NewService(favmemory.NewStore(), catalog)
	ctx := context.Background()

	ch, cancel := svc.Subscribe("u2")
	defer cancel()

	require.NoError(t, svc.Add(ctx, "u1", ids["Bella"]))

	select {
	case <-ch:
		t.Fatal("u2 must not receive u1 mutations")
	case <-time.After(50 * time.Millisecond):
	}
}
