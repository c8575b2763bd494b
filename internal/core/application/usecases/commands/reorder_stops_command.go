package commands

import (
	"errors"
	"fmt"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrReorderStopsCommandIsNotConstructed = errors.New(
	"ReorderStopsCommand must be created via NewReorderStopsCommand constructor",
)

// ReorderStopsCommand replaces a route's whole order, as produced by a drag
// and drop list. Order holds every stop ID of the route exactly once.
type ReorderStopsCommand struct { //nolint:recvcheck //using for validation
	routeScope
	order []kernel.UUID

	guard guard.ConstructorGuard
}

func NewReorderStopsCommand(accountID string, routeID kernel.UUID, order []kernel.UUID) (ReorderStopsCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	command := ReorderStopsCommand{routeScope: scope, guard: guard.NewConstructorGuard()}

	if err = errors.Join(err, command.setOrder(order)); err != nil {
		return ReorderStopsCommand{}, err
	}
	return command, nil
}

func (c ReorderStopsCommand) Validate() error {
	return c.guard.Validate(ErrReorderStopsCommandIsNotConstructed)
}

// Order returns a copy of the requested order.
func (c ReorderStopsCommand) Order() []kernel.UUID {
	return append([]kernel.UUID(nil), c.order...)
}

func (c *ReorderStopsCommand) setOrder(order []kernel.UUID) error {
	if len(order) == 0 {
		return errs.NewValueIsRequiredError("order")
	}
	for i, id := range order {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("position %d: %w", i+1, err))
		}
	}
	c.order = append([]kernel.UUID(nil), order...)
	return nil
}
