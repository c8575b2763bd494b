package commands

import (
	"context"

	"paperround/internal/core/ports"
)

type ResetRunCommandHandler struct {
	engine RunEngine
	routes ports.RouteRepository
}

func NewResetRunCommandHandler(engine RunEngine, routes ports.RouteRepository) ResetRunCommandHandler {
	return ResetRunCommandHandler{engine: engine, routes: routes}
}

func (h *ResetRunCommandHandler) Handle(ctx context.Context, cmd ResetRunCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return err
	}
	return h.engine.Reset(ctx, cmd.RouteID(), cmd.Confirmed())
}
