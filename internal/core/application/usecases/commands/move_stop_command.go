package commands

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrMoveStopCommandIsNotConstructed = errors.New(
	"MoveStopCommand must be created via NewMoveStopCommand constructor",
)

// MoveStopCommand moves a stop to a 1-based position. Positions past the
// end are clamped to the last one.
//
// Example:
//
//	cmd, err := NewMoveStopCommand(accountID, routeID, stopID, 1) // make it the first stop
type MoveStopCommand struct { //nolint:recvcheck //using for validation
	routeScope
	stopID   kernel.UUID
	position int

	guard guard.ConstructorGuard
}

func NewMoveStopCommand(accountID string, routeID, stopID kernel.UUID, position int) (MoveStopCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	command := MoveStopCommand{routeScope: scope, guard: guard.NewConstructorGuard()}

	if err = errors.Join(
		err,
		command.setStopID(stopID),
		command.setPosition(position),
	); err != nil {
		return MoveStopCommand{}, err
	}
	return command, nil
}

func (c MoveStopCommand) Validate() error {
	return c.guard.Validate(ErrMoveStopCommandIsNotConstructed)
}

func (c MoveStopCommand) StopID() kernel.UUID {
	return c.stopID
}

// Position returns the 1-based target position.
func (c MoveStopCommand) Position() int {
	return c.position
}

func (c *MoveStopCommand) setStopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("stopId", err)
	}
	c.stopID = id
	return nil
}

func (c *MoveStopCommand) setPosition(position int) error {
	if position < 1 {
		return errs.NewValueIsOutOfRangeError("position", position, 1, "stop count")
	}
	c.position = position
	return nil
}
