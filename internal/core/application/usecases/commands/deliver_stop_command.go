package commands

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrDeliverStopCommandIsNotConstructed = errors.New(
	"DeliverStopCommand must be created via NewDeliverStopCommand constructor",
)

// DeliverStopCommand marks the current stop of a run as delivered.
//
// ExpectedStopID, when set, must be the stop the client shows as current.
// A mismatch means the client acted on a stale view and the command is
// rejected without changing the run.
//
// Example:
//
//	current := view.Current.ID
//	cmd, err := NewDeliverStopCommand(accountID, routeID, &current)
//	if err != nil {
//	    return err
//	}
//	step, err := handler.Handle(ctx, cmd)
//	if step.Summary != nil {
//	    // that was the last stop
//	}
type DeliverStopCommand struct { //nolint:recvcheck //using for validation
	routeScope
	expectedStopID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeliverStopCommand(accountID string, routeID kernel.UUID, expectedStopID *kernel.UUID) (DeliverStopCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	command := DeliverStopCommand{routeScope: scope, guard: guard.NewConstructorGuard()}

	if err = errors.Join(err, command.setExpectedStopID(expectedStopID)); err != nil {
		return DeliverStopCommand{}, err
	}
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverStopCommand) Validate() error {
	return c.guard.Validate(ErrDeliverStopCommandIsNotConstructed)
}

// ExpectedStopID returns the stop the client expects to be current, or nil.
func (c DeliverStopCommand) ExpectedStopID() *kernel.UUID {
	return c.expectedStopID
}

func (c *DeliverStopCommand) setExpectedStopID(id *kernel.UUID) error {
	checked, err := optionalStopID(id)
	if err != nil {
		return err
	}
	c.expectedStopID = checked
	return nil
}

func optionalStopID(id *kernel.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("expectedStopId", err)
	}
	v := *id
	return &v, nil
}
