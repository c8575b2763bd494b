package ports

import (
	"context"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/summary"
)

// SummaryRepository stores end-of-run summaries per account.
type SummaryRepository interface {
	Save(ctx context.Context, s *summary.Summary) error

	// List returns the account's summaries, newest first.
	List(ctx context.Context, accountID string) ([]*summary.Summary, error)

	// Get returns the summary or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*summary.Summary, error)

	// Delete removes the summary for good. A missing id is an
	// ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.UUID) error
}
