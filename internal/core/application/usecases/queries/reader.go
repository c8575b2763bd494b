// Package queries contains the read operations: the run view an operator
// walks with, stop search, eligibility previews and run summaries.
// Queries never change state; a run view is built from the in-memory
// session (resumed from the persisted cursor when needed).
package queries

import (
	"context"
	"errors"
	"strings"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/ports"
	"paperround/internal/pkg/errs"
)

// RunReader is the read side of runs.Runner.
type RunReader interface {
	Current(ctx context.Context, routeID kernel.UUID) (runs.State, error)
	EligibleOn(ctx context.Context, routeID kernel.UUID, day kernel.Date) ([]*stop.Stop, error)
	Today() kernel.Date
}

type routeScope struct {
	accountID string
	routeID   kernel.UUID
}

func newRouteScope(accountID string, routeID kernel.UUID) (routeScope, error) {
	var accountErr, routeErr error
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		accountErr = errs.NewValueIsRequiredError("accountId")
	}
	if err := routeID.Validate(); err != nil {
		routeErr = errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}
	if err := errors.Join(accountErr, routeErr); err != nil {
		return routeScope{}, err
	}
	return routeScope{accountID: accountID, routeID: routeID}, nil
}

func (s routeScope) AccountID() string {
	return s.accountID
}

func (s routeScope) RouteID() kernel.UUID {
	return s.routeID
}

func requireRoute(ctx context.Context, routes ports.RouteRepository, scope routeScope) error {
	rt, err := routes.Get(ctx, scope.RouteID())
	if err != nil {
		return err
	}
	if !rt.IsVisibleTo(scope.AccountID()) {
		return errs.NewObjectNotFoundError("routeId", scope.RouteID().String())
	}
	return nil
}

// StopView is the read model of a stop shown to the operator.
type StopView struct {
	ID         kernel.UUID
	OrderIndex int
	Label      string
	Address    string
	Note       string
	Reference  string
	Tag        string
	Copies     int
	GeoPoint   *kernel.GeoPoint
}

func newStopView(s *stop.Stop) StopView {
	return StopView{
		ID:         s.ID(),
		OrderIndex: s.OrderIndex(),
		Label:      s.Label(),
		Address:    s.Address(),
		Note:       s.Note(),
		Reference:  s.Reference(),
		Tag:        s.Tag(),
		Copies:     s.Copies(),
		GeoPoint:   s.GeoPoint(),
	}
}

func newStopViews(stops []*stop.Stop) []StopView {
	out := make([]StopView, 0, len(stops))
	for _, s := range stops {
		out = append(out, newStopView(s))
	}
	return out
}
