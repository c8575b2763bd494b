package queries

import (
	"context"
	"strings"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListSummariesQueryHandler reads summaries straight from the
// run_summaries table.
type ListSummariesQueryHandler struct {
	db *gorm.DB
}

func NewListSummariesQueryHandler(db *gorm.DB) ListSummariesQueryHandler {
	return ListSummariesQueryHandler{db: db}
}

func (h ListSummariesQueryHandler) Handle(ctx context.Context, query ListSummariesQuery) ([]SummaryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pattern := "%" + escapeLike(query.Filter()) + "%"

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			route_id,
			route_name,
			date,
			started_at,
			finished_at,
			delivered,
			skipped
		FROM run_summaries
		WHERE account_id = ?
			AND (? = '' OR route_name ILIKE ? OR to_char(date, 'YYYY-MM-DD') LIKE ?)
		ORDER BY finished_at DESC, id
	`, query.AccountID(), query.Filter(), pattern, pattern).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("list summaries", err)
	}
	defer rows.Close()

	summaries := make([]SummaryView, 0)
	for rows.Next() {
		var (
			view               SummaryView
			id, routeID        uuid.UUID
			date               time.Time
			delivered, skipped pq.StringArray
		)

		if err = rows.Scan(
			&id,
			&routeID,
			&view.RouteName,
			&date,
			&view.StartedAt,
			&view.FinishedAt,
			&delivered,
			&skipped,
		); err != nil {
			return nil, errs.NewPersistenceError("scan summary", err)
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.RouteID, err = kernel.UUIDFromBytes(routeID[:]); err != nil {
			return nil, err
		}
		view.Date = kernel.DateOf(date, time.UTC)
		view.Delivered = append([]string{}, delivered...)
		view.Skipped = append([]string{}, skipped...)

		summaries = append(summaries, view)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("list summaries", err)
	}

	return summaries, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
