package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/happypaws/happypaws-api/internal/domains/catalog/adapters/memory"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

type mutableFavorites struct {
	mu  sync.Mutex
	set domain.FavoriteSet
	ch  chan domain.FavoriteSet
}

func newMutableFavorites() *mutableFavorites {
	return &mutableFavorites{set: domain.FavoriteSet{}, ch: make(chan domain.FavoriteSet, 8)}
}

func (m *mutableFavorites) FavoriteSet(context.Context, string) (domain.FavoriteSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := make(domain.FavoriteSet, len(m.set))
	for id := range m.set {
		set[id] = struct{}{}
	}
	return set, nil
}

func (m *mutableFavorites) Subscribe(string) (<-chan domain.FavoriteSet, func()) {
	return m.ch, func() {}
}

func (m *mutableFavorites) mark(t *testing.T, id string) {
	t.Helper()
	m.mu.Lock()
	m.set[id] = struct{}{}
	m.mu.Unlock()
	set, err := m.FavoriteSet(context.Background(), "u1")
	require.NoError(t, err)
	m.ch <- set
}

func listingNames(result []*projection.Projection[*domain.Listing]) []string {
	names := make([]string, 0, len(result))
	for _, proj := range result {
		names = append(names, proj.Entity.Name)
	}
	return names
}

func awaitResult(t *testing.T, results <-chan []*projection.Projection[*domain.Listing]) []*projection.Projection[*domain.Listing] {
	t.Helper()
	select {
	case result := <-results:
		return result
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher result")
		return nil
	}
}

func TestWatch_DeliversInitialResult(t *testing.T) {
	favorites := newMutableFavorites()
	svc := NewService(catalogmemory.NewRepository(), favorites)
	seedCatalog(t, svc)

	watcher := NewWatcher(svc, favorites, WithQuietPeriod(5*time.Millisecond))
	results, cancel, err := watcher.Watch(context.Background(), ports.SearchInput{Tab: domain.TabAll, UserID: "u1"})
	require.NoError(t, err)
	defer cancel()

	initial := awaitResult(t, results)
	assert.Len(t, initial, 3)
}

func TestWatch_RecomputesAfterFavoritesChange(t *testing.T) {
	favorites := newMutableFavorites()
	svc := NewService(catalogmemory.NewRepository(), favorites)
	ids := seedCatalog(t, svc)

	watcher := NewWatcher(svc, favorites, WithQuietPeriod(5*time.Millisecond))
	results, cancel, err := watcher.Watch(context.Background(), ports.SearchInput{
		Tab:           domain.TabAll,
		FavoritesOnly: true,
		UserID:        "u1",
	})
	require.NoError(t, err)
	defer cancel()

	initial := awaitResult(t, results)
	assert.Empty(t, initial)

	favorites.mark(t, ids["Luna"])
	next := awaitResult(t, results)
	assert.Equal(t, []string{"Luna"}, listingNames(next))
}

func TestWatch_CoalescesBursts(t *testing.T) {
	favorites := newMutableFavorites()
	svc := NewService(catalogmemory.NewRepository(), favorites)
	ids := seedCatalog(t, svc)

	watcher := NewWatcher(svc, favorites, WithQuietPeriod(50*time.Millisecond))
	results, cancel, err := watcher.Watch(context.Background(), ports.SearchInput{
		Tab:           domain.TabAll,
		FavoritesOnly: true,
		UserID:        "u1",
	})
	require.NoError(t, err)
	defer cancel()

	awaitResult(t, results)

	// Three rapid marks land within one quiet period and yield one result
	// reflecting the final set.
	favorites.mark(t, ids["Bella"])
	favorites.mark(t, ids["Max"])
	favorites.mark(t, ids["Luna"])

	final := awaitResult(t, results)
	assert.Len(t, final, 3)
}

func TestWatch_ReplacesUnreadStaleResult(t *testing.T) {
	favorites := newMutableFavorites()
	svc := NewService(catalogmemory.NewRepository(), favorites)
	ids := seedCatalog(t, svc)

	watcher := NewWatcher(svc, favorites, WithQuietPeriod(5*time.Millisecond))
	results, cancel, err := watcher.Watch(context.Background(), ports.SearchInput{
		Tab:           domain.TabAll,
		FavoritesOnly: true,
		UserID:        "u1",
	})
	require.NoError(t, err)
	defer cancel()

	// The initial (empty) result is left unread; the recomputation replaces
	// it so the first read already sees the new favorite.
	favorites.mark(t, ids["Bella"])
	time.Sleep(100 * time.Millisecond)

	first := awaitResult(t, results)
	assert.Equal(t, []string{"Bella"}, listingNames(first))
}

func TestWatch_CancelStopsRecomputation(t *testing.T) {
	favorites := newMutableFavorites()
	svc := NewService(catalogmemory.NewRepository(), favorites)
	ids := seedCatalog(t, svc)

	watcher := NewWatcher(svc, favorites, WithQuietPeriod(5*time.Millisecond))
	results, cancel, err := watcher.Watch(context.Background(), ports.SearchInput{
		Tab:           domain.TabAll,
		FavoritesOnly: true,
		UserID:        "u1",
	})
	require.NoError(t, err)

	awaitResult(t, results)
	cancel()
	favorites.mark(t, ids["Bella"])

	select {
	case result, ok := <-results:
		if ok {
			t.Fatalf("unexpected result after cancel: %v", listingNames(result))
		}
	case <-time.After(50 * time.Millisecond):
	}
}
