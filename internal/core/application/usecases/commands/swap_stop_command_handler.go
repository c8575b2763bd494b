package commands

import (
	"context"

	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"
)

// SwapStopCommandHandler moves a stop one position up or down.
type SwapStopCommandHandler struct {
	uowFactory StopUoWFactory
	routes     ports.RouteRepository
	ordering   services.OrderingService
}

func NewSwapStopCommandHandler(
	uowFactory StopUoWFactory,
	routes ports.RouteRepository,
	ordering services.OrderingService,
) SwapStopCommandHandler {
	return SwapStopCommandHandler{uowFactory: uowFactory, routes: routes, ordering: ordering}
}

// Handle returns the route's stops in their new order. Moving the first
// stop up or the last stop down is a precondition failure.
func (h *SwapStopCommandHandler) Handle(ctx context.Context, cmd SwapStopCommand) ([]*stop.Stop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return nil, err
	}

	return stopOrderChange(ctx, h.uowFactory, cmd.RouteID(), func(current []*stop.Stop) (services.Reordering, error) {
		return h.ordering.SwapAdjacent(current, cmd.StopID(), cmd.Direction())
	})
}
