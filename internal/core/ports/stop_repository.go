// Package ports defines the collaborator contracts of the run engine.
// Adapters under internal/adapters implement them; the application layer
// depends only on these interfaces.
package ports

import (
	"context"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
)

// StopRepository is the persistence contract for a route's stops.
type StopRepository interface {
	// ListOrdered returns every stop of the route in rank order
	// (orderIndex, then id). An unknown route yields an empty list.
	ListOrdered(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error)

	// Get returns one stop of the route or an ObjectNotFoundError.
	Get(ctx context.Context, routeID, stopID kernel.UUID) (*stop.Stop, error)

	// Add stores a new stop. A missing parent route is an
	// ObjectNotFoundError.
	Add(ctx context.Context, s *stop.Stop) error

	// UpdateOrderIndex writes the index of a single stop.
	UpdateOrderIndex(ctx context.Context, routeID, stopID kernel.UUID, index int) error

	// UpdateSuspensions replaces the stored suspension list of s.
	UpdateSuspensions(ctx context.Context, s *stop.Stop) error
}
