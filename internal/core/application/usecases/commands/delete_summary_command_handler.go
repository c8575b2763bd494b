package commands

import (
	"context"

	"paperround/internal/core/ports"
	"paperround/internal/pkg/errs"
)

type DeleteSummaryCommandHandler struct {
	summaries ports.SummaryRepository
}

func NewDeleteSummaryCommandHandler(summaries ports.SummaryRepository) DeleteSummaryCommandHandler {
	return DeleteSummaryCommandHandler{summaries: summaries}
}

// Handle deletes the summary. Summaries of other accounts are reported as
// not found.
func (h *DeleteSummaryCommandHandler) Handle(ctx context.Context, cmd DeleteSummaryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, err := h.summaries.Get(ctx, cmd.SummaryID())
	if err != nil {
		return err
	}
	if s.AccountID() != cmd.AccountID() {
		return errs.NewObjectNotFoundError("summaryId", cmd.SummaryID().String())
	}

	return h.summaries.Delete(ctx, cmd.SummaryID())
}
