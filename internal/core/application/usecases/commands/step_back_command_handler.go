package commands

import (
	"context"

	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/ports"
)

type StepBackCommandHandler struct {
	engine RunEngine
	routes ports.RouteRepository
}

func NewStepBackCommandHandler(engine RunEngine, routes ports.RouteRepository) StepBackCommandHandler {
	return StepBackCommandHandler{engine: engine, routes: routes}
}

func (h *StepBackCommandHandler) Handle(ctx context.Context, cmd StepBackCommand) (*run.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return nil, err
	}
	return h.engine.Back(ctx, cmd.RouteID())
}
