package commands

import (
	"errors"
	"strings"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrDeleteSummaryCommandIsNotConstructed = errors.New(
	"DeleteSummaryCommand must be created via NewDeleteSummaryCommand constructor",
)

// DeleteSummaryCommand removes one run summary of the acting account.
type DeleteSummaryCommand struct { //nolint:recvcheck //using for validation
	accountID string
	summaryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteSummaryCommand(accountID string, summaryID kernel.UUID) (DeleteSummaryCommand, error) {
	command := DeleteSummaryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		command.setAccountID(accountID),
		command.setSummaryID(summaryID),
	); err != nil {
		return DeleteSummaryCommand{}, err
	}
	return command, nil
}

func (c DeleteSummaryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteSummaryCommandIsNotConstructed)
}

func (c DeleteSummaryCommand) AccountID() string {
	return c.accountID
}

func (c DeleteSummaryCommand) SummaryID() kernel.UUID {
	return c.summaryID
}

func (c *DeleteSummaryCommand) setAccountID(accountID string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return errs.NewValueIsRequiredError("accountId")
	}
	c.accountID = accountID
	return nil
}

func (c *DeleteSummaryCommand) setSummaryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("summaryId", err)
	}
	c.summaryID = id
	return nil
}
