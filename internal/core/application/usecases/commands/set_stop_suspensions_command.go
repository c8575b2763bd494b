package commands

import (
	"errors"
	"fmt"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrSetStopSuspensionsCommandIsNotConstructed = errors.New(
	"SetStopSuspensionsCommand must be created via NewSetStopSuspensionsCommand constructor",
)

// SetStopSuspensionsCommand replaces the suspension list of a stop. An
// empty list lifts every suspension.
type SetStopSuspensionsCommand struct { //nolint:recvcheck //using for validation
	routeScope
	stopID      kernel.UUID
	suspensions []stop.Suspension

	guard guard.ConstructorGuard
}

func NewSetStopSuspensionsCommand(
	accountID string,
	routeID, stopID kernel.UUID,
	suspensions []stop.Suspension,
) (SetStopSuspensionsCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	command := SetStopSuspensionsCommand{routeScope: scope, guard: guard.NewConstructorGuard()}

	if err = errors.Join(
		err,
		command.setStopID(stopID),
		command.setSuspensions(suspensions),
	); err != nil {
		return SetStopSuspensionsCommand{}, err
	}
	return command, nil
}

func (c SetStopSuspensionsCommand) Validate() error {
	return c.guard.Validate(ErrSetStopSuspensionsCommandIsNotConstructed)
}

func (c SetStopSuspensionsCommand) StopID() kernel.UUID {
	return c.stopID
}

func (c SetStopSuspensionsCommand) Suspensions() []stop.Suspension {
	return append([]stop.Suspension(nil), c.suspensions...)
}

func (c *SetStopSuspensionsCommand) setStopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("stopId", err)
	}
	c.stopID = id
	return nil
}

func (c *SetStopSuspensionsCommand) setSuspensions(suspensions []stop.Suspension) error {
	for i, s := range suspensions {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("suspension %d: %w", i, err)
		}
	}
	c.suspensions = append([]stop.Suspension(nil), suspensions...)
	return nil
}
