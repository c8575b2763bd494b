package queries

import (
	"errors"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/run"
	"paperround/internal/pkg/guard"
)

// UpcomingStops is how many stops after the current one a run view shows.
const UpcomingStops = 4

var ErrGetRunQueryIsNotConstructed = errors.New(
	"GetRunQuery must be created via NewGetRunQuery constructor",
)

// GetRunQuery reads the run of a route as the operator sees it.
//
// Example:
//
//	query, err := NewGetRunQuery(accountID, routeID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if view.Current != nil {
//	    fmt.Printf("%d/%d %s\n", view.Cursor+1, view.Total, view.Current.Label)
//	}
type GetRunQuery struct {
	routeScope

	guard guard.ConstructorGuard
}

func NewGetRunQuery(accountID string, routeID kernel.UUID) (GetRunQuery, error) {
	scope, err := newRouteScope(accountID, routeID)
	if err != nil {
		return GetRunQuery{}, err
	}
	return GetRunQuery{routeScope: scope, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRunQuery) Validate() error {
	return q.guard.Validate(ErrGetRunQueryIsNotConstructed)
}

// GetRunQueryResponse is the run view. Current, Previous and Upcoming are
// empty when the run is not Active. Remaining counts the current stop.
type GetRunQueryResponse struct {
	RouteID        kernel.UUID
	Date           *kernel.Date
	Status         run.Status
	Cursor         int
	Total          int
	Current        *StopView
	Previous       *StopView
	Upcoming       []StopView
	Remaining      int
	TotalCopies    int
	Delivered      []string
	Skipped        []string
	CompletedToday bool
}
