package queries

import (
	"errors"
	"strings"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrGetSummaryQueryIsNotConstructed = errors.New(
	"GetSummaryQuery must be created via NewGetSummaryQuery constructor",
)

type GetSummaryQuery struct {
	accountID string
	summaryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSummaryQuery(accountID string, summaryID kernel.UUID) (GetSummaryQuery, error) {
	var accountErr, idErr error
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		accountErr = errs.NewValueIsRequiredError("accountId")
	}
	if err := summaryID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("summaryId", err)
	}
	if err := errors.Join(accountErr, idErr); err != nil {
		return GetSummaryQuery{}, err
	}
	return GetSummaryQuery{accountID: accountID, summaryID: summaryID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetSummaryQueryIsNotConstructed)
}

func (q GetSummaryQuery) AccountID() string {
	return q.accountID
}

func (q GetSummaryQuery) SummaryID() kernel.UUID {
	return q.summaryID
}
