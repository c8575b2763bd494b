package commands

import (
	"context"

	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"
)

// AddStopCommandHandler appends stops to routes.
type AddStopCommandHandler struct {
	uowFactory StopUoWFactory
	routes     ports.RouteRepository
	ordering   services.OrderingService
	clock      ports.Clock
}

func NewAddStopCommandHandler(
	uowFactory StopUoWFactory,
	routes ports.RouteRepository,
	ordering services.OrderingService,
	clock ports.Clock,
) AddStopCommandHandler {
	return AddStopCommandHandler{uowFactory: uowFactory, routes: routes, ordering: ordering, clock: clock}
}

// Handle inserts the stop at index len(stops) inside one transaction. When
// stored indices of the route are out of step with their rank, the
// affected stops are rewritten in the same transaction.
func (h *AddStopCommandHandler) Handle(ctx context.Context, cmd AddStopCommand) (*stop.Stop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return nil, err
	}

	candidate, err := stop.NewStop(cmd.StopID(), cmd.RouteID(), cmd.Label(), cmd.Address(), cmd.Details(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StopRepository()
	current, err := repo.ListOrdered(ctx, cmd.RouteID())
	if err != nil {
		return nil, err
	}

	plan, err := h.ordering.Append(current, candidate)
	if err != nil {
		return nil, err
	}

	added := plan.Stops[len(current)]
	if err = repo.Add(ctx, added); err != nil {
		return nil, err
	}
	if err = writeDirty(ctx, repo, cmd.RouteID(), plan, added); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return added, nil
}
