package commands

import (
	"context"

	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/ports"
)

type SetStopSuspensionsCommandHandler struct {
	uowFactory StopUoWFactory
	routes     ports.RouteRepository
	clock      ports.Clock
}

func NewSetStopSuspensionsCommandHandler(
	uowFactory StopUoWFactory,
	routes ports.RouteRepository,
	clock ports.Clock,
) SetStopSuspensionsCommandHandler {
	return SetStopSuspensionsCommandHandler{uowFactory: uowFactory, routes: routes, clock: clock}
}

// Handle stores the new list. A run already in progress keeps its
// snapshot; the change applies from the next start.
func (h *SetStopSuspensionsCommandHandler) Handle(ctx context.Context, cmd SetStopSuspensionsCommand) (*stop.Stop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StopRepository()
	s, err := repo.Get(ctx, cmd.RouteID(), cmd.StopID())
	if err != nil {
		return nil, err
	}

	if err = s.ReplaceSuspensions(cmd.Suspensions(), h.clock.Now()); err != nil {
		return nil, err
	}
	if err = repo.UpdateSuspensions(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
