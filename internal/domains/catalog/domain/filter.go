package domain

import (
	"fmt"
	"strings"
)

// PuppyMaxAge is the inclusive upper age bound of the Puppies tab.
const PuppyMaxAge = 1

// Tab selects one of the fixed catalog category views.
type Tab string

const (
	TabAll       Tab = "All"
	TabAvailable Tab = "Available"
	TabPuppies   Tab = "Puppies"
	TabAdults    Tab = "Adults"
)

// ParseTab maps a raw value onto a known tab. Empty input selects TabAll.
func ParseTab(raw string) (Tab, error) {
	switch strings.TrimSpace(raw) {
	case "", string(TabAll):
		return TabAll, nil
	case string(TabAvailable):
		return TabAvailable, nil
	case string(TabPuppies):
		return TabPuppies, nil
	case string(TabAdults):
		return TabAdults, nil
	default:
		return TabAll, fmt.Errorf("unknown catalog tab %q", raw)
	}
}

// FavoriteSet holds the listing identifiers the current user has marked.
type FavoriteSet map[string]struct{}

// Contains reports set membership.
func (s FavoriteSet) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s[id]
	return ok
}

// FilterState carries the independent, AND-composed display criteria.
// MinPrice defaults to 0 and MaxPrice to unbounded when nil.
type FilterState struct {
	Query         string
	Tab           Tab
	MinPrice      float64
	MaxPrice      *float64
	FavoritesOnly bool
}

// Normalize repairs inverted state rather than silently producing an empty
// range: a max below min is clamped up to min, and a negative min becomes 0.
func (f FilterState) Normalize() FilterState {
	if f.Tab == "" {
		f.Tab = TabAll
	}
	if f.MinPrice < 0 {
		f.MinPrice = 0
	}
	if f.MaxPrice != nil && *f.MaxPrice < f.MinPrice {
		clamped := f.MinPrice
		f.MaxPrice = &clamped
	}
	return f
}

// Matches reports whether a single listing passes every active criterion.
func (f FilterState) Matches(l *Listing, favorites FavoriteSet) bool {
	if l == nil {
		return false
	}
	f = f.Normalize()
	if !matchesQuery(l, f.Query) {
		return false
	}
	if !matchesTab(l, f.Tab) {
		return false
	}
	if l.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.FavoritesOnly && !favorites.Contains(l.ID) {
		return false
	}
	return true
}

// ApplyFilter derives the displayed subset of listings. The input slice is
// never mutated; criteria compose by logical AND so application order is
// irrelevant.
func ApplyFilter(listings []*Listing, state FilterState, favorites FavoriteSet) []*Listing {
	result := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if state.Matches(l, favorites) {
			result = append(result, l)
		}
	}
	return result
}

func matchesQuery(l *Listing, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), query) ||
		strings.Contains(strings.ToLower(l.Breed), query)
}

func matchesTab(l *Listing, tab Tab) bool {
	switch tab {
	case TabAvailable:
		return l.Available
	case TabPuppies:
		return l.Age <= PuppyMaxAge
	case TabAdults:
		return l.Age > PuppyMaxAge
	default:
		return true
	}
}
