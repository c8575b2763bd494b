package run

import (
	"errors"
	"strings"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
)

var ErrOutcomeIsNotConstructed = errors.New("Outcome must be created via NewOutcome constructor")

// Outcome is the recorded result for one (route, date, stop). Writing an
// outcome for the same key again overwrites the previous one.
type Outcome struct {
	routeID    kernel.UUID
	date       kernel.Date
	stopID     kernel.UUID
	delivered  bool
	reason     string
	recordedAt time.Time

	isConstructed bool
}

// NewOutcome builds an outcome. reason is only kept for skips.
func NewOutcome(
	routeID kernel.UUID,
	date kernel.Date,
	stopID kernel.UUID,
	delivered bool,
	reason string,
	recordedAt time.Time,
) (Outcome, error) {
	if err := errors.Join(
		wrapRequired("routeId", routeID.Validate()),
		date.Validate(),
		wrapRequired("stopId", stopID.Validate()),
	); err != nil {
		return Outcome{}, err
	}
	if recordedAt.IsZero() {
		return Outcome{}, errs.NewValueIsRequiredError("recordedAt")
	}

	o := Outcome{
		routeID:       routeID,
		date:          date,
		stopID:        stopID,
		delivered:     delivered,
		recordedAt:    recordedAt,
		isConstructed: true,
	}
	if !delivered {
		o.reason = strings.TrimSpace(reason)
	}
	return o, nil
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}

func (o Outcome) Validate() error {
	if !o.isConstructed {
		return ErrOutcomeIsNotConstructed
	}
	return nil
}

func (o Outcome) RouteID() kernel.UUID {
	return o.routeID
}

func (o Outcome) Date() kernel.Date {
	return o.date
}

func (o Outcome) StopID() kernel.UUID {
	return o.stopID
}

func (o Outcome) Delivered() bool {
	return o.delivered
}

// Reason is empty for deliveries and for skips without a reason.
func (o Outcome) Reason() string {
	return o.reason
}

func (o Outcome) RecordedAt() time.Time {
	return o.recordedAt
}
