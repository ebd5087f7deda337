package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/memory"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
)

type staticFavorites struct {
	set domain.FavoriteSet
}

func (s staticFavorites) FavoriteSet(context.Context, string) (domain.FavoriteSet, error) {
	return s.set, nil
}

func strPtr(v string) *string     { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func imgPtr(v []string) *[]string { return &v }

func seedCatalog(t *testing.T, svc *Service) map[string]string {
	t.Helper()
	ids := map[string]string{}
	seeds := []struct {
		name  string
		breed string
		age   int
		price float64
	}{
		{"Bella", "Golden Retriever", 0, 750},
		{"Max", "German Shepherd", 1, 900},
		{"Luna", "Poodle", 2, 850},
	}
	for _, seed := range seeds {
		proj, err := svc.AddListing(context.Background(), ports.ListingMutation{
			Name:      strPtr(seed.name),
			Breed:     strPtr(seed.breed),
			Age:       intPtr(seed.age),
			Price:     floatPtr(seed.price),
			ImageURLs: imgPtr([]string{"http://example.com/photo.jpg"}),
		})
		require.NoError(t, err)
		ids[seed.name] = proj.Entity.ID
	}
	return ids
}

func TestAddListing_Success(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)

	proj, err := svc.AddListing(context.Background(), ports.ListingMutation{
		Name:      strPtr("Bella"),
		Breed:     strPtr("Golden Retriever"),
		Age:       intPtr(0),
		Price:     floatPtr(750),
		ImageURLs: imgPtr([]string{"http://example.com/bella.jpg"}),
	})

	require.NoError(t, err)
	require.NotNil(t, proj)
	assert.NotEmpty(t, proj.Entity.ID)
	assert.Equal(t, "Bella", proj.Entity.Name)
	assert.True(t, proj.Entity.Available)
	assert.False(t, proj.Metadata.CreatedAt.IsZero())
}

func TestAddListing_InvalidInput(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)

	_, err := svc.AddListing(context.Background(), ports.ListingMutation{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddListing(context.Background(), ports.ListingMutation{
		Name:      strPtr("Bella"),
		Breed:     strPtr("Golden Retriever"),
		Age:       intPtr(-1),
		ImageURLs: imgPtr([]string{"http://example.com/bella.jpg"}),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativeAge)
}

func TestSearch_TabAndQuery(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)
	seedCatalog(t, svc)

	puppies, err := svc.Search(context.Background(), ports.SearchInput{Tab: domain.TabPuppies})
	require.NoError(t, err)
	require.Len(t, puppies, 2)

	poodles, err := svc.Search(context.Background(), ports.SearchInput{Query: "poodle"})
	require.NoError(t, err)
	require.Len(t, poodles, 1)
	assert.Equal(t, "Luna", poodles[0].Entity.Name)
}

func TestSearch_FavoritesOnlyRequiresUser(t *testing.T) {
	favorites := staticFavorites{set: domain.FavoriteSet{}}
	svc := NewService(catalogmemory.NewRepository(), favorites)
	ids := seedCatalog(t, svc)
	favorites.set[ids["Max"]] = struct{}{}

	scoped, err := svc.Search(context.Background(), ports.SearchInput{FavoritesOnly: true, UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Max", scoped[0].Entity.Name)

	anonymous, err := svc.Search(context.Background(), ports.SearchInput{FavoritesOnly: true})
	require.NoError(t, err)
	assert.Empty(t, anonymous)
}

func TestSearch_ClampsInvertedPriceRange(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)
	seedCatalog(t, svc)

	result, err := svc.Search(context.Background(), ports.SearchInput{
		MinPrice: 850,
		MaxPrice: floatPtr(100),
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Luna", result[0].Entity.Name)
}

func TestUpdateListing_PartialMutation(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)
	ids := seedCatalog(t, svc)

	updated, err := svc.UpdateListing(context.Background(), ids["Bella"], ports.ListingMutation{
		Price:     floatPtr(680),
		Available: func() *bool { v := false; return &v }(),
	})
	require.NoError(t, err)
	assert.Equal(t, 680.0, updated.Entity.Price)
	assert.False(t, updated.Entity.Available)
	assert.Equal(t, "Bella", updated.Entity.Name)
}

func TestUpdateListing_NotFound(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)

	_, err := svc.UpdateListing(context.Background(), "missing", ports.ListingMutation{Price: floatPtr(10)})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestResolve_SkipsMissingAndKeepsOrder(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)
	ids := seedCatalog(t, svc)

	result, err := svc.Resolve(context.Background(), []string{ids["Luna"], "missing", ids["Bella"]})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Luna", result[0].Entity.Name)
	assert.Equal(t, "Bella", result[1].Entity.Name)
}

func TestCount_DefaultsToAll(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)
	seedCatalog(t, svc)

	count, err := svc.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	adults, err := svc.Count(context.Background(), domain.TabAdults)
	require.NoError(t, err)
	assert.Equal(t, int64(1), adults)
}

func TestRemoveListing(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository(), nil)
	ids := seedCatalog(t, svc)

	require.NoError(t, svc.RemoveListing(context.Background(), ids["Max"]))
	_, err := svc.GetByID(context.Background(), ids["Max"])
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, svc.RemoveListing(context.Background(), ids["Max"]), ports.ErrNotFound)
}
