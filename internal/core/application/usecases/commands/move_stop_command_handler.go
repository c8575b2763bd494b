package commands

import (
	"context"

	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"
)

// MoveStopCommandHandler moves a stop to a chosen position, shifting the
// stops in between by one.
type MoveStopCommandHandler struct {
	uowFactory StopUoWFactory
	routes     ports.RouteRepository
	ordering   services.OrderingService
}

func NewMoveStopCommandHandler(
	uowFactory StopUoWFactory,
	routes ports.RouteRepository,
	ordering services.OrderingService,
) MoveStopCommandHandler {
	return MoveStopCommandHandler{uowFactory: uowFactory, routes: routes, ordering: ordering}
}

func (h *MoveStopCommandHandler) Handle(ctx context.Context, cmd MoveStopCommand) ([]*stop.Stop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return nil, err
	}

	return stopOrderChange(ctx, h.uowFactory, cmd.RouteID(), func(current []*stop.Stop) (services.Reordering, error) {
		return h.ordering.MoveTo(current, cmd.StopID(), cmd.Position())
	})
}
