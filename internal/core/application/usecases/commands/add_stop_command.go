package commands

import (
	"errors"
	"strings"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrAddStopCommandIsNotConstructed = errors.New(
	"AddStopCommand must be created via NewAddStopCommand constructor",
)

// AddStopCommand appends a new stop at the end of a route.
// The stop ID is generated by the constructor.
//
// Example:
//
//	cmd, err := NewAddStopCommand(accountID, routeID, "Bar Pepe", "Calle Mayor 3", stop.Details{Copies: 2})
//	if err != nil {
//	    return err
//	}
//	added, err := handler.Handle(ctx, cmd)
//	fmt.Println(added.OrderIndex()) // last position
type AddStopCommand struct { //nolint:recvcheck //using for validation
	routeScope
	stopID  kernel.UUID
	label   string
	address string
	details stop.Details

	guard guard.ConstructorGuard
}

func NewAddStopCommand(
	accountID string,
	routeID kernel.UUID,
	label, address string,
	details stop.Details,
) (AddStopCommand, error) {
	scope, err := newRouteScope(accountID, routeID)
	command := AddStopCommand{
		routeScope: scope,
		stopID:     kernel.NewUUID(),
		details:    details,
		guard:      guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		err,
		command.setLabel(label),
		command.setAddress(address),
	); err != nil {
		return AddStopCommand{}, err
	}
	return command, nil
}

func (c AddStopCommand) Validate() error {
	return c.guard.Validate(ErrAddStopCommandIsNotConstructed)
}

func (c AddStopCommand) StopID() kernel.UUID {
	return c.stopID
}

func (c AddStopCommand) Label() string {
	return c.label
}

func (c AddStopCommand) Address() string {
	return c.address
}

func (c AddStopCommand) Details() stop.Details {
	return c.details
}

func (c *AddStopCommand) setLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	c.label = label
	return nil
}

func (c *AddStopCommand) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	c.address = address
	return nil
}
