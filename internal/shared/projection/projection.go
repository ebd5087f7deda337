package projection

import "time"

// Metadata carries the persistence timestamps every stored aggregate shares.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection pairs an aggregate with the metadata its store stamped on it,
// keeping the domain types free of persistence concerns.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}
