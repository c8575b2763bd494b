package ports

import (
	"context"
	"time"

	"paperround/internal/core/domain/model/kernel"
)

// SessionState is what the session store keeps for one route between
// restarts.
//
// Cursor is nil when no run is in progress. Started and CompletedOn only
// drive what the operator is offered (resume, "already done today"); the
// run itself reads them once, at start or resume.
type SessionState struct {
	Cursor      *int
	Anchor      *kernel.UUID
	StartedAt   time.Time
	Started     bool
	CompletedOn *kernel.Date
}

// CompletedOnDay reports whether the completed flag refers to d.
func (s SessionState) CompletedOnDay(d kernel.Date) bool {
	return s.CompletedOn != nil && s.CompletedOn.Equal(d)
}

// SessionStore persists the run cursor and flags per route.
type SessionStore interface {
	Load(ctx context.Context, routeID kernel.UUID) (SessionState, error)

	// SetCursor stores the cursor and the id of the stop it points at.
	SetCursor(ctx context.Context, routeID kernel.UUID, cursor int, anchor *kernel.UUID) error

	// MarkStarted sets the started flag and the start time.
	MarkStarted(ctx context.Context, routeID kernel.UUID, startedAt time.Time) error

	// MarkCompleted records that the route finished a run on date.
	MarkCompleted(ctx context.Context, routeID kernel.UUID, date kernel.Date) error

	// Clear removes the cursor, anchor and started flag. The completed flag
	// stays.
	Clear(ctx context.Context, routeID kernel.UUID) error

	// ResetCompleted drops completed flags that refer to days before
	// before. It returns how many were dropped.
	ResetCompleted(ctx context.Context, before kernel.Date) (int, error)
}
