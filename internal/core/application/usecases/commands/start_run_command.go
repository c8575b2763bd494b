package commands

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/guard"
)

var ErrStartRunCommandIsNotConstructed = errors.New(
	"StartRunCommand must be created via NewStartRunCommand constructor",
)

// StartRunCommand starts today's run of a route, or resumes it when a
// cursor was persisted.
//
// Example:
//
//	cmd, err := NewStartRunCommand(accountID, routeID)
//	if err != nil {
//	    return err
//	}
//	state, err := handler.Handle(ctx, cmd)
type StartRunCommand struct { //nolint:recvcheck //using for validation
	routeScope

	guard guard.ConstructorGuard
}

func NewStartRunCommand(accountID string, routeID kernel.UUID) (StartRunCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	if err != nil {
		return StartRunCommand{}, err
	}
	return StartRunCommand{routeScope: scope, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartRunCommand) Validate() error {
	return c.guard.Validate(ErrStartRunCommandIsNotConstructed)
}
