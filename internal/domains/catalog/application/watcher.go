package application

import (
	"context"
	"sync"
	"time"

	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	"github.com/happypaws/happypaws-api/internal/shared/debounce"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// FavoritesFeed delivers favorite-set updates for a user.
type FavoritesFeed interface {
	Subscribe(userID string) (<-chan domain.FavoriteSet, func())
}

// Watcher re-runs a catalog search whenever the user's favorite set changes.
// Bursts of updates coalesce through a debouncer so rapid toggling produces
// one recomputation after the quiet period.
type Watcher struct {
	service ports.Service
	feed    FavoritesFeed
	quiet   time.Duration
}

// WatcherOption customizes a Watcher.
type WatcherOption func(*Watcher)

// WithQuietPeriod overrides the debounce quiet period.
func WithQuietPeriod(quiet time.Duration) WatcherOption {
	return func(w *Watcher) { w.quiet = quiet }
}

// NewWatcher wires the search service to a favorites feed.
func NewWatcher(service ports.Service, feed FavoritesFeed, opts ...WatcherOption) *Watcher {
	w := &Watcher{service: service, feed: feed, quiet: debounce.DefaultQuiet}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch emits the search result for input now and again after every
// favorite-set change, debounced. The channel carries only the latest
// result; a slow consumer sees the newest state, not every intermediate
// one. The returned cancel func releases the subscription.
func (w *Watcher) Watch(ctx context.Context, input ports.SearchInput) (<-chan []*projection.Projection[*domain.Listing], func(), error) {
	initial, err := w.service.Search(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	results := make(chan []*projection.Projection[*domain.Listing], 1)
	results <- initial

	updates, unsubscribe := w.feed.Subscribe(input.UserID)
	done := make(chan struct{})
	coalescer := debounce.New(w.quiet)

	// The results channel is never closed: the debounce timer may still be
	// firing when the watch ends, and a send on a closed channel would
	// panic. Consumers stop reading after cancel.
	go func() {
		for {
			select {
			case _, ok := <-updates:
				if !ok {
					return
				}
				coalescer.Trigger(func() {
					w.push(ctx, input, results, done)
				})
			case <-done:
				coalescer.Cancel()
				return
			case <-ctx.Done():
				coalescer.Cancel()
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}
	return results, cancel, nil
}

func (w *Watcher) push(ctx context.Context, input ports.SearchInput, results chan []*projection.Projection[*domain.Listing], done <-chan struct{}) {
	select {
	case <-done:
		return
	case <-ctx.Done():
		return
	default:
	}
	result, err := w.service.Search(ctx, input)
	if err != nil {
		return
	}
	// Drop the stale pending result so the consumer always reads the latest.
	select {
	case <-results:
	default:
	}
	select {
	case results <- result:
	case <-done:
	}
}
