package commands

import (
	"context"
	"errors"
	"strings"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/route"
	"paperround/internal/core/ports"
	"paperround/internal/pkg/errs"
)

// routeScope is the account acting and the route it acts on. Every route
// command embeds one.
type routeScope struct {
	accountID string
	routeID   kernel.UUID
}

func newRouteScope(accountID string, routeID kernel.UUID) (routeScope, error) {
	s := routeScope{}
	if err := errors.Join(s.setAccountID(accountID), s.setRouteID(routeID)); err != nil {
		return routeScope{}, err
	}
	return s, nil
}

// AccountID returns the acting account.
func (s routeScope) AccountID() string {
	return s.accountID
}

// RouteID returns the target route.
func (s routeScope) RouteID() kernel.UUID {
	return s.routeID
}

func (s *routeScope) setAccountID(accountID string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return errs.NewValueIsRequiredError("accountId")
	}
	s.accountID = accountID
	return nil
}

func (s *routeScope) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}
	s.routeID = routeID
	return nil
}

// requireRoute loads the route and hides it from accounts that may not see
// it.
func requireRoute(ctx context.Context, routes ports.RouteRepository, scope routeScope) (*route.Route, error) {
	rt, err := routes.Get(ctx, scope.RouteID())
	if err != nil {
		return nil, err
	}
	if !rt.IsVisibleTo(scope.AccountID()) {
		return nil, errs.NewObjectNotFoundError("routeId", scope.RouteID().String())
	}
	return rt, nil
}
