package commands

import (
	"errors"

	"paperround/internal/pkg/guard"
)

var ErrRefreshHolidaysCommandIsNotConstructed = errors.New(
	"RefreshHolidaysCommand must be created via NewRefreshHolidaysCommand constructor",
)

// RefreshHolidaysCommand drops the cached holiday calendar and loads it
// again. Runs already in progress keep the list they started with.
type RefreshHolidaysCommand struct {
	guard guard.ConstructorGuard
}

func NewRefreshHolidaysCommand() RefreshHolidaysCommand {
	return RefreshHolidaysCommand{guard: guard.NewConstructorGuard()}
}

func (c *RefreshHolidaysCommand) Validate() error {
	return c.guard.Validate(ErrRefreshHolidaysCommandIsNotConstructed)
}
