package commands

import (
	"context"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"
)

// writeDirty stores the new index of every stop in the plan's dirty range,
// one after another. skip, when set, is left out because the caller stores
// it itself.
func writeDirty(
	ctx context.Context,
	repo ports.StopRepository,
	routeID kernel.UUID,
	plan services.Reordering,
	skip *stop.Stop,
) error {
	for _, d := range plan.Dirty() {
		if skip != nil && d.Stop.IsEqual(skip) {
			continue
		}
		if err := repo.UpdateOrderIndex(ctx, routeID, d.Stop.ID(), d.Index); err != nil {
			return err
		}
	}
	return nil
}

// stopOrderChange runs one ordering operation inside a stop transaction and
// persists its dirty range.
func stopOrderChange(
	ctx context.Context,
	uowFactory StopUoWFactory,
	routeID kernel.UUID,
	plan func(current []*stop.Stop) (services.Reordering, error),
) ([]*stop.Stop, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StopRepository()
	current, err := repo.ListOrdered(ctx, routeID)
	if err != nil {
		return nil, err
	}

	reordering, err := plan(current)
	if err != nil {
		return nil, err
	}
	if reordering.IsNoop() {
		return reordering.Stops, nil
	}

	if err = writeDirty(ctx, repo, routeID, reordering, nil); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return reordering.Stops, nil
}
