package summary

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
)

var (
	// ErrSummaryIsNotConstructed is returned when a Summary was not created
	// through NewSummary or RestoreSummary.
	ErrSummaryIsNotConstructed = errors.New("Summary must be created via NewSummary constructor")
)

// Summary is the immutable end-of-run record: which customers received a
// delivery, which were skipped, and how long the run took.
//
// Summaries are keyed by (account, date, route) but a route completed twice
// on the same day produces two summaries; they are told apart by id and
// finish time.
type Summary struct {
	id         kernel.UUID
	accountID  string
	routeID    kernel.UUID
	routeName  string
	date       kernel.Date
	startedAt  time.Time
	finishedAt time.Time
	delivered  []string
	skipped    []string

	isConstructed bool
}

// Params groups the fields of a summary.
type Params struct {
	AccountID  string
	RouteID    kernel.UUID
	RouteName  string
	Date       kernel.Date
	StartedAt  time.Time
	FinishedAt time.Time
	Delivered  []string
	Skipped    []string
}

// NewSummary builds a summary with a fresh id.
//
// Example:
//
//	s, err := summary.NewSummary(summary.Params{
//	    AccountID:  "acc-1",
//	    RouteID:    routeID,
//	    RouteName:  "Gamonal",
//	    Date:       today,
//	    StartedAt:  session.StartedAt(),
//	    FinishedAt: clock.Now(),
//	    Delivered:  session.Delivered(),
//	    Skipped:    session.Skipped(),
//	})
func NewSummary(p Params) (*Summary, error) {
	return RestoreSummary(kernel.NewUUID(), p)
}

// RestoreSummary rebuilds a stored summary.
func RestoreSummary(id kernel.UUID, p Params) (*Summary, error) {
	s := &Summary{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setAccountID(p.AccountID),
		s.setRoute(p.RouteID, p.RouteName),
		s.setDate(p.Date),
		s.setTimes(p.StartedAt, p.FinishedAt),
	); err != nil {
		return nil, err
	}

	s.delivered = nonNil(p.Delivered)
	s.skipped = nonNil(p.Skipped)
	return s, nil
}

func nonNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return slices.Clone(labels)
}

func (s *Summary) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSummaryIsNotConstructed
	}
	return nil
}

func (s *Summary) ID() kernel.UUID {
	return s.id
}

func (s *Summary) AccountID() string {
	return s.accountID
}

func (s *Summary) RouteID() kernel.UUID {
	return s.routeID
}

func (s *Summary) RouteName() string {
	return s.routeName
}

func (s *Summary) Date() kernel.Date {
	return s.date
}

func (s *Summary) StartedAt() time.Time {
	return s.startedAt
}

func (s *Summary) FinishedAt() time.Time {
	return s.finishedAt
}

func (s *Summary) Delivered() []string {
	return slices.Clone(s.delivered)
}

func (s *Summary) Skipped() []string {
	return slices.Clone(s.skipped)
}

// Total is the number of stops visited.
func (s *Summary) Total() int {
	return len(s.delivered) + len(s.skipped)
}

// Duration is the wall-clock time between start and finish.
func (s *Summary) Duration() time.Duration {
	return s.finishedAt.Sub(s.startedAt)
}

func (s *Summary) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Summary) setAccountID(accountID string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return errs.NewValueIsRequiredError("accountId")
	}
	s.accountID = accountID
	return nil
}

func (s *Summary) setRoute(routeID kernel.UUID, routeName string) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}
	s.routeID = routeID
	s.routeName = strings.TrimSpace(routeName)
	return nil
}

func (s *Summary) setDate(d kernel.Date) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.date = d
	return nil
}

func (s *Summary) setTimes(startedAt, finishedAt time.Time) error {
	if startedAt.IsZero() {
		return errs.NewValueIsRequiredError("startedAt")
	}
	if finishedAt.Before(startedAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"finishedAt",
			fmt.Errorf("%s is before start %s", finishedAt.Format(time.RFC3339), startedAt.Format(time.RFC3339)),
		)
	}
	s.startedAt = startedAt
	s.finishedAt = finishedAt
	return nil
}
