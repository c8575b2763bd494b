package queries

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

var ErrListEligibleStopsQueryIsNotConstructed = errors.New(
	"ListEligibleStopsQuery must be created via NewListEligibleStopsQuery constructor",
)

// ListEligibleStopsQuery previews the stops a run would visit on a day.
// A nil day means today in the configured time zone.
type ListEligibleStopsQuery struct {
	routeScope
	day *kernel.Date

	guard guard.ConstructorGuard
}

func NewListEligibleStopsQuery(accountID string, routeID kernel.UUID, day *kernel.Date) (ListEligibleStopsQuery, error) {
	scope, err := newRouteScope(accountID, routeID)
	var dayErr error
	if day != nil {
		if validateErr := day.Validate(); validateErr != nil {
			dayErr = errs.NewValueIsInvalidErrorWithCause("date", validateErr)
		}
	}
	if err = errors.Join(err, dayErr); err != nil {
		return ListEligibleStopsQuery{}, err
	}

	query := ListEligibleStopsQuery{routeScope: scope, guard: guard.NewConstructorGuard()}
	if day != nil {
		d := *day
		query.day = &d
	}
	return query, nil
}

func (q ListEligibleStopsQuery) Validate() error {
	return q.guard.Validate(ErrListEligibleStopsQueryIsNotConstructed)
}

func (q ListEligibleStopsQuery) Day() *kernel.Date {
	return q.day
}

type ListEligibleStopsQueryResponse struct {
	Date        kernel.Date
	Stops       []StopView
	TotalCopies int
}
