package commands

import (
	"context"

	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/ports"
)

type JumpToStopCommandHandler struct {
	engine RunEngine
	routes ports.RouteRepository
}

func NewJumpToStopCommandHandler(engine RunEngine, routes ports.RouteRepository) JumpToStopCommandHandler {
	return JumpToStopCommandHandler{engine: engine, routes: routes}
}

// Handle moves the cursor. Stops outside today's list are not found.
func (h *JumpToStopCommandHandler) Handle(ctx context.Context, cmd JumpToStopCommand) (*run.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return nil, err
	}
	return h.engine.JumpTo(ctx, cmd.RouteID(), cmd.StopID())
}
