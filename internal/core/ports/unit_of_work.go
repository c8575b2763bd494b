package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per stop edit.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups the index writes of one stop edit (append, swap, move,
// suspension change) so they land together or not at all.
type UnitOfWork interface {
	// Begin opens the transaction. A second call keeps the open one.
	Begin(ctx context.Context) error

	// Commit makes every write since Begin visible.
	Commit(ctx context.Context) error

	// Rollback discards the writes. After a Commit it only reports that no
	// transaction is open, so handlers defer it and ignore the result.
	Rollback(ctx context.Context) error

	// StopRepository reads and writes stops inside the open transaction, or
	// directly against the pool when none is open.
	StopRepository() StopRepository
}
