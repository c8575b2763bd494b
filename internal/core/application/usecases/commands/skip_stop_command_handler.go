package commands

import (
	"context"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/ports"
)

// SkipStopCommandHandler records skips.
type SkipStopCommandHandler struct {
	engine RunEngine
	routes ports.RouteRepository
}

func NewSkipStopCommandHandler(engine RunEngine, routes ports.RouteRepository) SkipStopCommandHandler {
	return SkipStopCommandHandler{engine: engine, routes: routes}
}

// Handle behaves like DeliverStopCommandHandler.Handle with a skipped
// outcome.
func (h *SkipStopCommandHandler) Handle(ctx context.Context, cmd SkipStopCommand) (runs.Step, error) {
	if err := cmd.Validate(); err != nil {
		return runs.Step{}, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return runs.Step{}, err
	}
	return h.engine.Skip(ctx, cmd.RouteID(), cmd.AccountID(), cmd.ExpectedStopID(), cmd.Reason())
}
