package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo      ports.Repository
	favorites ports.FavoritesReader
}

// NewService wires the catalog service with its dependencies. The favorites
// reader may be nil when the favorites-only filter is not needed.
func NewService(repo ports.Repository, favorites ports.FavoritesReader) *Service {
	return &Service{repo: repo, favorites: favorites}
}

// Search derives the displayed subset: the tab predicate runs store-side,
// text/price/favorites reduce the page in memory via the pure filter.
func (s *Service) Search(ctx context.Context, input ports.SearchInput) ([]*projection.Projection[*domain.Listing], error) {
	state := domain.FilterState{
		Query:         input.Query,
		Tab:           input.Tab,
		MinPrice:      input.MinPrice,
		MaxPrice:      input.MaxPrice,
		FavoritesOnly: input.FavoritesOnly,
	}.Normalize()

	page, err := s.repo.FindByTab(ctx, state.Tab)
	if err != nil {
		return nil, err
	}

	var favorites domain.FavoriteSet
	if state.FavoritesOnly && s.favorites != nil && input.UserID != "" {
		favorites, err = s.favorites.FavoriteSet(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
	}

	result := make([]*projection.Projection[*domain.Listing], 0, len(page))
	for _, proj := range page {
		if state.Matches(proj.Entity, favorites) {
			result = append(result, proj)
		}
	}
	return result, nil
}

// Count returns the store-side count of listings matching a tab predicate.
func (s *Service) Count(ctx context.Context, tab domain.Tab) (int64, error) {
	if tab == "" {
		tab = domain.TabAll
	}
	return s.repo.CountByTab(ctx, tab)
}

// GetByID loads a single listing.
func (s *Service) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Listing], error) {
	return s.repo.GetByID(ctx, id)
}

// Resolve materializes a list of identifiers, dropping the ones that no
// longer resolve. Used by the cart and order views.
func (s *Service) Resolve(ctx context.Context, ids []string) ([]*projection.Projection[*domain.Listing], error) {
	return s.repo.GetByIDs(ctx, ids)
}

// AddListing persists a new listing aggregate with a generated identifier.
func (s *Service) AddListing(ctx context.Context, mutation ports.ListingMutation) (*projection.Projection[*domain.Listing], error) {
	listing, err := buildListing(uuid.NewString(), mutation)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, listing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateListing applies a partial mutation to an existing listing.
func (s *Service) UpdateListing(ctx context.Context, id string, mutation ports.ListingMutation) (*projection.Projection[*domain.Listing], error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyMutation(current.Entity, mutation); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, current.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// RemoveListing deletes a listing from the catalog.
func (s *Service) RemoveListing(ctx context.Context, id string) error {
	return mapError(s.repo.Delete(ctx, id))
}

// List exposes every listing for admin views.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Listing], error) {
	return s.repo.List(ctx)
}

func buildListing(id string, mutation ports.ListingMutation) (*domain.Listing, error) {
	if mutation.Name == nil {
		return nil, domain.ErrEmptyName
	}
	if mutation.Breed == nil {
		return nil, domain.ErrEmptyBreed
	}
	if mutation.ImageURLs == nil {
		return nil, domain.ErrEmptyImages
	}
	age := 0
	if mutation.Age != nil {
		age = *mutation.Age
	}
	price := 0.0
	if mutation.Price != nil {
		price = *mutation.Price
	}
	listing, err := domain.NewListing(id, *mutation.Name, *mutation.Breed, age, price, *mutation.ImageURLs)
	if err != nil {
		return nil, err
	}
	if mutation.Description != nil {
		listing.UpdateDescription(*mutation.Description)
	}
	available := true
	if mutation.Available != nil {
		available = *mutation.Available
	}
	listing.SetAvailability(available)
	return listing, nil
}

func applyMutation(target *domain.Listing, mutation ports.ListingMutation) error {
	if mutation.Name != nil {
		if err := target.Rename(*mutation.Name); err != nil {
			return err
		}
	}
	if mutation.Breed != nil {
		if err := target.UpdateBreed(*mutation.Breed); err != nil {
			return err
		}
	}
	if mutation.Age != nil {
		if err := target.UpdateAge(*mutation.Age); err != nil {
			return err
		}
	}
	if mutation.Price != nil {
		if err := target.UpdatePrice(*mutation.Price); err != nil {
			return err
		}
	}
	if mutation.ImageURLs != nil {
		if err := target.ReplaceImages(*mutation.ImageURLs); err != nil {
			return err
		}
	}
	if mutation.Description != nil {
		target.UpdateDescription(*mutation.Description)
	}
	if mutation.Available != nil {
		target.SetAvailability(*mutation.Available)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
