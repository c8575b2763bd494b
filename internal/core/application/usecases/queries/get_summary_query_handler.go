package queries

import (
	"context"

	"paperround/internal/core/ports"
	"paperround/internal/pkg/errs"
)

type GetSummaryQueryHandler struct {
	summaries ports.SummaryRepository
}

func NewGetSummaryQueryHandler(summaries ports.SummaryRepository) GetSummaryQueryHandler {
	return GetSummaryQueryHandler{summaries: summaries}
}

// Handle returns the summary. Summaries of other accounts are not found.
func (h GetSummaryQueryHandler) Handle(ctx context.Context, query GetSummaryQuery) (SummaryView, error) {
	if err := query.Validate(); err != nil {
		return SummaryView{}, err
	}

	s, err := h.summaries.Get(ctx, query.SummaryID())
	if err != nil {
		return SummaryView{}, err
	}
	if s.AccountID() != query.AccountID() {
		return SummaryView{}, errs.NewObjectNotFoundError("summaryId", query.SummaryID().String())
	}

	return SummaryView{
		ID:         s.ID(),
		RouteID:    s.RouteID(),
		RouteName:  s.RouteName(),
		Date:       s.Date(),
		StartedAt:  s.StartedAt(),
		FinishedAt: s.FinishedAt(),
		Delivered:  s.Delivered(),
		Skipped:    s.Skipped(),
	}, nil
}
