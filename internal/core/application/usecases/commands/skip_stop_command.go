package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

const maxSkipReasonLength = 200

var ErrSkipStopCommandIsNotConstructed = errors.New(
	"SkipStopCommand must be created via NewSkipStopCommand constructor",
)

// SkipStopCommand marks the current stop of a run as skipped. The reason is
// optional free text kept with the outcome.
type SkipStopCommand struct { //nolint:recvcheck //using for validation
	routeScope
	expectedStopID *kernel.UUID
	reason         string

	guard guard.ConstructorGuard
}

func NewSkipStopCommand(
	accountID string,
	routeID kernel.UUID,
	expectedStopID *kernel.UUID,
	reason string,
) (SkipStopCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	command := SkipStopCommand{routeScope: scope, guard: guard.NewConstructorGuard()}

	if err = errors.Join(
		err,
		command.setExpectedStopID(expectedStopID),
		command.setReason(reason),
	); err != nil {
		return SkipStopCommand{}, err
	}
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SkipStopCommand) Validate() error {
	return c.guard.Validate(ErrSkipStopCommandIsNotConstructed)
}

func (c SkipStopCommand) ExpectedStopID() *kernel.UUID {
	return c.expectedStopID
}

func (c SkipStopCommand) Reason() string {
	return c.reason
}

func (c *SkipStopCommand) setExpectedStopID(id *kernel.UUID) error {
	checked, err := optionalStopID(id)
	if err != nil {
		return err
	}
	c.expectedStopID = checked
	return nil
}

func (c *SkipStopCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if n := utf8.RuneCountInString(reason); n > maxSkipReasonLength {
		return errs.NewValueIsOutOfRangeError("reason", n, 0, maxSkipReasonLength)
	}
	c.reason = reason
	return nil
}
