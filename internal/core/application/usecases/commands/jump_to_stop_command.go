package commands

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrJumpToStopCommandIsNotConstructed = errors.New(
	"JumpToStopCommand must be created via NewJumpToStopCommand constructor",
)

// JumpToStopCommand moves a run's cursor onto any stop of today's list,
// typically one picked from a search.
type JumpToStopCommand struct { //nolint:recvcheck //using for validation
	routeScope
	stopID kernel.UUID

	guard guard.ConstructorGuard
}

func NewJumpToStopCommand(accountID string, routeID, stopID kernel.UUID) (JumpToStopCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	command := JumpToStopCommand{routeScope: scope, guard: guard.NewConstructorGuard()}

	if err = errors.Join(err, command.setStopID(stopID)); err != nil {
		return JumpToStopCommand{}, err
	}
	return command, nil
}

func (c JumpToStopCommand) Validate() error {
	return c.guard.Validate(ErrJumpToStopCommandIsNotConstructed)
}

func (c JumpToStopCommand) StopID() kernel.UUID {
	return c.stopID
}

func (c *JumpToStopCommand) setStopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("stopId", err)
	}
	c.stopID = id
	return nil
}
