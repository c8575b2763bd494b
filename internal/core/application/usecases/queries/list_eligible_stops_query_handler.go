package queries

import (
	"context"

	"paperround/internal/core/ports"
)

type ListEligibleStopsQueryHandler struct {
	runs   RunReader
	routes ports.RouteRepository
}

func NewListEligibleStopsQueryHandler(reader RunReader, routes ports.RouteRepository) ListEligibleStopsQueryHandler {
	return ListEligibleStopsQueryHandler{runs: reader, routes: routes}
}

// Handle applies the same filter a run start applies, without starting one.
func (h ListEligibleStopsQueryHandler) Handle(
	ctx context.Context,
	query ListEligibleStopsQuery,
) (ListEligibleStopsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListEligibleStopsQueryResponse{}, err
	}
	if err := requireRoute(ctx, h.routes, query.routeScope); err != nil {
		return ListEligibleStopsQueryResponse{}, err
	}

	day := h.runs.Today()
	if query.Day() != nil {
		day = *query.Day()
	}

	eligible, err := h.runs.EligibleOn(ctx, query.RouteID(), day)
	if err != nil {
		return ListEligibleStopsQueryResponse{}, err
	}

	copies := 0
	for _, s := range eligible {
		copies += s.Copies()
	}
	return ListEligibleStopsQueryResponse{Date: day, Stops: newStopViews(eligible), TotalCopies: copies}, nil
}
