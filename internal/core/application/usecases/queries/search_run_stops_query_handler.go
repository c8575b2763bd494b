package queries

import (
	"context"

	"paperround/internal/core/ports"
)

type SearchRunStopsQueryHandler struct {
	runs   RunReader
	routes ports.RouteRepository
}

func NewSearchRunStopsQueryHandler(reader RunReader, routes ports.RouteRepository) SearchRunStopsQueryHandler {
	return SearchRunStopsQueryHandler{runs: reader, routes: routes}
}

// Handle returns at most MaxSearchResults stops. A route without a run has
// nothing to search.
func (h SearchRunStopsQueryHandler) Handle(ctx context.Context, query SearchRunStopsQuery) ([]StopView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requireRoute(ctx, h.routes, query.routeScope); err != nil {
		return nil, err
	}

	state, err := h.runs.Current(ctx, query.RouteID())
	if err != nil {
		return nil, err
	}
	if state.Session == nil {
		return []StopView{}, nil
	}
	return newStopViews(state.Session.Search(query.Text(), MaxSearchResults)), nil
}
