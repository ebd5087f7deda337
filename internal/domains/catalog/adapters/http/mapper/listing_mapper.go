package mapper

import (
	"time"

	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

// Listing is the HTTP representation of a catalog listing.
type Listing struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	ImageURLs   []string  `json:"imageUrls"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// MutationListing captures inbound payloads for create/update flows while
// preserving field presence.
type MutationListing struct {
	Name        *string   `json:"name,omitempty"`
	Breed       *string   `json:"breed,omitempty"`
	Age         *int      `json:"age,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Description *string   `json:"description,omitempty"`
	ImageURLs   *[]string `json:"imageUrls,omitempty"`
	Available   *bool     `json:"available,omitempty"`
}

// ToMutation converts a mutation payload into the application input while
// preserving which fields were provided.
func ToMutation(model MutationListing) ports.ListingMutation {
	input := ports.ListingMutation{}
	if model.Name != nil {
		name := *model.Name
		input.Name = &name
	}
	if model.Breed != nil {
		breed := *model.Breed
		input.Breed = &breed
	}
	if model.Age != nil {
		age := *model.Age
		input.Age = &age
	}
	if model.Price != nil {
		price := *model.Price
		input.Price = &price
	}
	if model.Description != nil {
		description := *model.Description
		input.Description = &description
	}
	if model.ImageURLs != nil {
		urls := append([]string{}, (*model.ImageURLs)...)
		input.ImageURLs = &urls
	}
	if model.Available != nil {
		available := *model.Available
		input.Available = &available
	}
	return input
}

// FromDomainListing maps a domain aggregate into a transport Listing.
func FromDomainListing(l *domain.Listing) Listing {
	return Listing{
		ID:          l.ID,
		Name:        l.Name,
		Breed:       l.Breed,
		Age:         l.Age,
		Price:       l.Price,
		Description: l.Description,
		ImageURLs:   append([]string{}, l.ImageURLs...),
		Available:   l.Available,
	}
}

// FromProjection maps a projection into a transport listing enriched with metadata.
func FromProjection(p *projection.Projection[*domain.Listing]) Listing {
	listing := FromDomainListing(p.Entity)
	listing.CreatedAt = p.Metadata.CreatedAt
	listing.UpdatedAt = p.Metadata.UpdatedAt
	return listing
}

// FromProjectionList maps a slice of projections into transport listings.
func FromProjectionList(list []*projection.Projection[*domain.Listing]) []Listing {
	result := make([]Listing, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}
