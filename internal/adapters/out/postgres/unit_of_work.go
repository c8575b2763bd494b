// Package postgres provides the GORM-based Unit of Work used by the stop
// commands, and the schema migration for every table the service owns.
//
// A Unit of Work wraps one database transaction. Repositories obtained from
// it while the transaction is open run inside it; before Begin and after
// Commit/Rollback they use the plain connection.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	repo := uow.StopRepository()
//	if err := repo.UpdateOrderIndex(ctx, routeID, a, 1); err != nil {
//	    return err
//	}
//	if err := repo.UpdateOrderIndex(ctx, routeID, b, 2); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to one operation; concurrent operations
// must create their own.
package postgres

import (
	"context"
	"sync"

	"paperround/internal/adapters/out/postgres/stoprepo"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one transaction and remembers which stops were
// written through it.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB

	mu      sync.Mutex
	touched []kernel.UUID
}

// Begin opens the transaction. Calling it twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction's writes permanent and closes it.
// Returns gorm.ErrInvalidTransaction when none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's writes and closes it. After a
// successful Commit it returns gorm.ErrInvalidTransaction, which callers
// that always defer Rollback ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.mu.Lock()
	uow.touched = nil
	uow.mu.Unlock()
	return err
}

// StopRepository returns a stop repository bound to the open transaction,
// or to the plain connection when none is open.
func (uow *GormUnitOfWork) StopRepository() ports.StopRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return stoprepo.NewGormStopRepository(db, uow)
}

// TrackAggregate records a stop written through this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, _ any) {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	uow.touched = append(uow.touched, id)
}

// Touched returns the ids of the stops written since the last rollback.
func (uow *GormUnitOfWork) Touched() []kernel.UUID {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	return append([]kernel.UUID(nil), uow.touched...)
}
