// Package commands contains the operations that change state: driving a run,
// editing a route's stop order and suspensions, deleting summaries and
// refreshing the holiday calendar.
// Every command is built through its constructor and validated by its
// handler before anything is touched.
package commands

import (
	"context"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/ports"
)

// Unit of Work interfaces give the stop commands a transaction boundary.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// StopRepoFactory provides access to the stop repository within a
	// transaction.
	StopRepoFactory interface {
		StopRepository() ports.StopRepository
	}

	// StopUoW manages transactions for stop edits. Reads and index writes
	// of one edit share the transaction, so a failed write leaves the
	// stored order as it was.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   stops, err := uow.StopRepository().ListOrdered(ctx, routeID)
	//   // ... compute and write the dirty range
	//
	//   err = uow.Commit(ctx)
	StopUoW interface {
		TxManager
		StopRepoFactory
	}

	// StopUoWFactory creates new stop unit of work instances.
	StopUoWFactory interface {
		Create() StopUoW
	}
)

// RunEngine is what the run commands need from runs.Runner.
type RunEngine interface {
	Start(ctx context.Context, routeID kernel.UUID, accountID string) (runs.State, error)
	Deliver(ctx context.Context, routeID kernel.UUID, accountID string, expected *kernel.UUID) (runs.Step, error)
	Skip(ctx context.Context, routeID kernel.UUID, accountID string, expected *kernel.UUID, reason string) (runs.Step, error)
	Back(ctx context.Context, routeID kernel.UUID) (*run.Session, error)
	JumpTo(ctx context.Context, routeID, stopID kernel.UUID) (*run.Session, error)
	Reset(ctx context.Context, routeID kernel.UUID, confirmed bool) error
}

// HolidayRefresher reloads the holiday calendar.
type HolidayRefresher interface {
	Refresh(ctx context.Context) (int, error)
}
