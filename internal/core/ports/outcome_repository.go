package ports

import (
	"context"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/run"
)

// OutcomeRepository records what happened at each stop of a run.
type OutcomeRepository interface {
	// Record upserts the outcome keyed by (route, date, stop). Recording the
	// same key twice leaves one record holding the latest values.
	Record(ctx context.Context, o run.Outcome) error

	// ListByRouteAndDate returns the outcomes of one route on one day.
	ListByRouteAndDate(ctx context.Context, routeID kernel.UUID, date kernel.Date) ([]run.Outcome, error)
}
