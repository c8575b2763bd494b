package queries

import (
	"context"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/ports"
)

// GetRunQueryHandler builds run views.
type GetRunQueryHandler struct {
	runs   RunReader
	routes ports.RouteRepository
}

func NewGetRunQueryHandler(reader RunReader, routes ports.RouteRepository) GetRunQueryHandler {
	return GetRunQueryHandler{runs: reader, routes: routes}
}

func (h GetRunQueryHandler) Handle(ctx context.Context, query GetRunQuery) (GetRunQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRunQueryResponse{}, err
	}
	if err := requireRoute(ctx, h.routes, query.routeScope); err != nil {
		return GetRunQueryResponse{}, err
	}

	state, err := h.runs.Current(ctx, query.RouteID())
	if err != nil {
		return GetRunQueryResponse{}, err
	}
	return RunViewOf(query.RouteID(), state), nil
}

// RunViewOf renders a run state. Commands that move the run reuse it so
// every endpoint answers with the same view.
func RunViewOf(routeID kernel.UUID, state runs.State) GetRunQueryResponse {
	view := GetRunQueryResponse{
		RouteID:        routeID,
		Status:         state.Status(),
		Upcoming:       []StopView{},
		Delivered:      []string{},
		Skipped:        []string{},
		CompletedToday: state.CompletedToday,
	}

	s := state.Session
	if s == nil {
		return view
	}

	date := s.Date()
	view.Date = &date
	view.Cursor = s.Cursor()
	view.Total = s.Len()
	view.Remaining = s.Remaining()
	view.TotalCopies = s.TotalCopies()
	view.Delivered = s.Delivered()
	view.Skipped = s.Skipped()
	view.Upcoming = newStopViews(s.Upcoming(UpcomingStops))

	if cur, ok := s.Current(); ok {
		v := newStopView(cur)
		view.Current = &v
	}
	if prev, ok := s.Previous(); ok {
		v := newStopView(prev)
		view.Previous = &v
	}
	return view
}
