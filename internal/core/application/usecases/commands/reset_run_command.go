package commands

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/guard"
)

var ErrResetRunCommandIsNotConstructed = errors.New(
	"ResetRunCommand must be created via NewResetRunCommand constructor",
)

// ResetRunCommand throws away a route's run. Confirmed carries the
// operator's explicit confirmation; without it the reset is refused.
// Outcomes recorded so far are not deleted.
type ResetRunCommand struct { //nolint:recvcheck //using for validation
	routeScope
	confirmed bool

	guard guard.ConstructorGuard
}

func NewResetRunCommand(accountID string, routeID kernel.UUID, confirmed bool) (ResetRunCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	if err != nil {
		return ResetRunCommand{}, err
	}
	return ResetRunCommand{routeScope: scope, confirmed: confirmed, guard: guard.NewConstructorGuard()}, nil
}

func (c ResetRunCommand) Validate() error {
	return c.guard.Validate(ErrResetRunCommandIsNotConstructed)
}

func (c ResetRunCommand) Confirmed() bool {
	return c.confirmed
}
