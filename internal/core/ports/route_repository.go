package ports

import (
	"context"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/route"
)

// RouteRepository reads routes. Route CRUD lives outside this service.
type RouteRepository interface {
	// Get returns the route or an ObjectNotFoundError.
	Get(ctx context.Context, routeID kernel.UUID) (*route.Route, error)
}
