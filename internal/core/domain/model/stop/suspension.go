package stop

import (
	"errors"
	"fmt"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

// ErrSuspensionIsNotConstructed is returned when validating a zero-value
// Suspension.
var ErrSuspensionIsNotConstructed = errors.New("Suspension must be created via NewSuspension constructor")

// Suspension is a temporary pause ("baja") of deliveries to a stop over an
// inclusive range of calendar days.
//
// Suspensions may overlap; they are never merged.
type Suspension struct {
	from  kernel.Date
	until kernel.Date
	guard guard.ConstructorGuard
}

// NewSuspension returns a ValidationError unless from <= until and both
// dates are set.
func NewSuspension(from, until kernel.Date) (Suspension, error) {
	if err := errors.Join(
		requireDate("from", from),
		requireDate("until", until),
	); err != nil {
		return Suspension{}, err
	}

	if until.Before(from) {
		return Suspension{}, errs.NewValueIsInvalidErrorWithCause(
			"suspension",
			fmt.Errorf("until %s is before from %s", until, from),
		)
	}

	return Suspension{from: from, until: until, guard: guard.NewConstructorGuard()}, nil
}

func requireDate(param string, d kernel.Date) error {
	if d.IsZero() {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func (s Suspension) Validate() error {
	return s.guard.Validate(ErrSuspensionIsNotConstructed)
}

func (s Suspension) From() kernel.Date {
	return s.from
}

func (s Suspension) Until() kernel.Date {
	return s.until
}

// Contains reports whether d lies in [from, until].
func (s Suspension) Contains(d kernel.Date) bool {
	return !d.Before(s.from) && !d.After(s.until)
}

func (s Suspension) String() string {
	return s.from.String() + ".." + s.until.String()
}
