package projection

import "time"

// Metadata captures the persistence timestamps the store assigns to a record.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection transports an aggregate together with its persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}
