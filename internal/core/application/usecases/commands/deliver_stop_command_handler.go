package commands

import (
	"context"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/ports"
)

// DeliverStopCommandHandler records deliveries.
type DeliverStopCommandHandler struct {
	engine RunEngine
	routes ports.RouteRepository
}

func NewDeliverStopCommandHandler(engine RunEngine, routes ports.RouteRepository) DeliverStopCommandHandler {
	return DeliverStopCommandHandler{engine: engine, routes: routes}
}

// Handle records the outcome, advances the cursor and, on the last stop,
// finishes the run and writes its summary.
func (h *DeliverStopCommandHandler) Handle(ctx context.Context, cmd DeliverStopCommand) (runs.Step, error) {
	if err := cmd.Validate(); err != nil {
		return runs.Step{}, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return runs.Step{}, err
	}
	return h.engine.Deliver(ctx, cmd.RouteID(), cmd.AccountID(), cmd.ExpectedStopID())
}
