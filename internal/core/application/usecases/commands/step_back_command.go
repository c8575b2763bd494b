package commands

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/guard"
)

var ErrStepBackCommandIsNotConstructed = errors.New(
	"StepBackCommand must be created via NewStepBackCommand constructor",
)

// StepBackCommand moves a run's cursor back by one stop. The outcome
// already recorded for that stop is kept.
type StepBackCommand struct { //nolint:recvcheck //using for validation
	routeScope

	guard guard.ConstructorGuard
}

func NewStepBackCommand(accountID string, routeID kernel.UUID) (StepBackCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	if err != nil {
		return StepBackCommand{}, err
	}
	return StepBackCommand{routeScope: scope, guard: guard.NewConstructorGuard()}, nil
}

func (c StepBackCommand) Validate() error {
	return c.guard.Validate(ErrStepBackCommandIsNotConstructed)
}
