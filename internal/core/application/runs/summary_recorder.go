package runs

import (
	"context"

	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/domain/model/summary"
	"paperround/internal/core/ports"
	"paperround/internal/pkg/errs"
)

// SummaryRecorder writes the end-of-run summary.
type SummaryRecorder struct {
	repo  ports.SummaryRepository
	clock ports.Clock
}

func NewSummaryRecorder(repo ports.SummaryRepository, clock ports.Clock) SummaryRecorder {
	return SummaryRecorder{repo: repo, clock: clock}
}

// Finish builds exactly one summary for a Finished session and saves it.
// Repeated calls produce repeated summaries; nothing is deduplicated.
func (r SummaryRecorder) Finish(
	ctx context.Context,
	session *run.Session,
	accountID string,
	routeName string,
) (*summary.Summary, error) {
	if session.Status() != run.Finished {
		return nil, errs.NewPreconditionFailedError("finish", "run is "+session.Status().String())
	}

	finishedAt := r.clock.Now()
	if finishedAt.Before(session.StartedAt()) {
		finishedAt = session.StartedAt()
	}

	s, err := summary.NewSummary(summary.Params{
		AccountID:  accountID,
		RouteID:    session.RouteID(),
		RouteName:  routeName,
		Date:       session.Date(),
		StartedAt:  session.StartedAt(),
		FinishedAt: finishedAt,
		Delivered:  session.Delivered(),
		Skipped:    session.Skipped(),
	})
	if err != nil {
		return nil, err
	}

	if err = r.repo.Save(ctx, s); err != nil {
		return nil, errs.NewPersistenceError("save summary", err)
	}
	return s, nil
}
