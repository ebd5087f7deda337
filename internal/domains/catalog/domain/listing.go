package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID       = errors.New("listing id is required")
	ErrEmptyName     = errors.New("listing name is required")
	ErrEmptyBreed    = errors.New("listing breed is required")
	ErrEmptyImages   = errors.New("at least one image url is required")
	ErrNegativeAge   = errors.New("age must be zero or greater")
	ErrNegativePrice = errors.New("price must be zero or greater")
)

// Listing represents a dog available for adoption in the storefront catalog.
// Consumers treat listings as read-only; mutation happens only through the
// admin management operations.
type Listing struct {
	ID          string
	Name        string
	Breed       string
	Age         int
	Price       float64
	Description string
	ImageURLs   []string
	Available   bool
}

// NewListing validates the invariants and builds a new Listing aggregate.
func NewListing(id, name, breed string, age int, price float64, imageURLs []string) (*Listing, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	l := &Listing{ID: id}
	if err := l.Rename(name); err != nil {
		return nil, err
	}
	if err := l.UpdateBreed(breed); err != nil {
		return nil, err
	}
	if err := l.UpdateAge(age); err != nil {
		return nil, err
	}
	if err := l.UpdatePrice(price); err != nil {
		return nil, err
	}
	if err := l.ReplaceImages(imageURLs); err != nil {
		return nil, err
	}
	return l, nil
}

// Rename mutates the listing name ensuring the invariant.
func (l *Listing) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	l.Name = name
	return nil
}

// UpdateBreed sets the breed label.
func (l *Listing) UpdateBreed(breed string) error {
	if strings.TrimSpace(breed) == "" {
		return ErrEmptyBreed
	}
	l.Breed = breed
	return nil
}

// UpdateAge stores the age in whole years.
func (l *Listing) UpdateAge(age int) error {
	if age < 0 {
		return ErrNegativeAge
	}
	l.Age = age
	return nil
}

// UpdatePrice stores the asking price.
func (l *Listing) UpdatePrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	l.Price = price
	return nil
}

// ReplaceImages ensures at least one image is stored.
func (l *Listing) ReplaceImages(urls []string) error {
	if len(urls) == 0 {
		return ErrEmptyImages
	}
	l.ImageURLs = append([]string{}, urls...)
	return nil
}

// UpdateDescription sets the free-text description.
func (l *Listing) UpdateDescription(description string) {
	l.Description = description
}

// SetAvailability flips the availability flag.
func (l *Listing) SetAvailability(available bool) {
	l.Available = available
}

// IsPuppy reports whether the listing falls in the puppy age band.
func (l *Listing) IsPuppy() bool {
	return l.Age <= PuppyMaxAge
}

// Clone returns a defensive copy of the listing.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	clone := *l
	if len(l.ImageURLs) > 0 {
		clone.ImageURLs = append([]string{}, l.ImageURLs...)
	}
	return &clone
}
