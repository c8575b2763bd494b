package commands

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/services"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrSwapStopCommandIsNotConstructed = errors.New(
	"SwapStopCommand must be created via NewSwapStopCommand constructor",
)

// SwapStopCommand exchanges a stop with its neighbour above or below.
type SwapStopCommand struct { //nolint:recvcheck //using for validation
	routeScope
	stopID    kernel.UUID
	direction services.Direction

	guard guard.ConstructorGuard
}

func NewSwapStopCommand(
	accountID string,
	routeID, stopID kernel.UUID,
	direction services.Direction,
) (SwapStopCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	command := SwapStopCommand{routeScope: scope, guard: guard.NewConstructorGuard()}

	if err = errors.Join(
		err,
		command.setStopID(stopID),
		command.setDirection(direction),
	); err != nil {
		return SwapStopCommand{}, err
	}
	return command, nil
}

func (c SwapStopCommand) Validate() error {
	return c.guard.Validate(ErrSwapStopCommandIsNotConstructed)
}

func (c SwapStopCommand) StopID() kernel.UUID {
	return c.stopID
}

func (c SwapStopCommand) Direction() services.Direction {
	return c.direction
}

func (c *SwapStopCommand) setStopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("stopId", err)
	}
	c.stopID = id
	return nil
}

func (c *SwapStopCommand) setDirection(d services.Direction) error {
	if d != services.Up && d != services.Down {
		return errs.NewValueIsInvalidError("direction")
	}
	c.direction = d
	return nil
}
