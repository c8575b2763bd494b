package queries

import (
	"errors"
	"strings"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrListSummariesQueryIsNotConstructed = errors.New(
	"ListSummariesQuery must be created via NewListSummariesQuery constructor",
)

// ListSummariesQuery lists the run summaries of an account, newest first.
// Filter, when set, matches the route name (case-insensitive) or the run
// date written as YYYY-MM-DD.
//
// Example:
//
//	query, _ := NewListSummariesQuery(accountID, "2025-06")
//	summaries, err := handler.Handle(ctx, query) // every run of June 2025
type ListSummariesQuery struct {
	accountID string
	filter    string

	guard guard.ConstructorGuard
}

func NewListSummariesQuery(accountID, filter string) (ListSummariesQuery, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ListSummariesQuery{}, errs.NewValueIsRequiredError("accountId")
	}
	return ListSummariesQuery{
		accountID: accountID,
		filter:    strings.TrimSpace(filter),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListSummariesQuery) Validate() error {
	return q.guard.Validate(ErrListSummariesQueryIsNotConstructed)
}

func (q ListSummariesQuery) AccountID() string {
	return q.accountID
}

func (q ListSummariesQuery) Filter() string {
	return q.filter
}

// SummaryView is the read model of a run summary.
type SummaryView struct {
	ID         kernel.UUID
	RouteID    kernel.UUID
	RouteName  string
	Date       kernel.Date
	StartedAt  time.Time
	FinishedAt time.Time
	Delivered  []string
	Skipped    []string
}

// Total is the number of stops the run visited.
func (v SummaryView) Total() int {
	return len(v.Delivered) + len(v.Skipped)
}

// DurationMinutes is the run duration rounded down to whole minutes.
func (v SummaryView) DurationMinutes() int {
	return int(v.FinishedAt.Sub(v.StartedAt) / time.Minute)
}
