package stoprepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// GormStopRepository implements ports.StopRepository using GORM.
type GormStopRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is told about every stop the repository writes.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// NewGormStopRepository creates a stop repository. tracker may be nil when
// the repository is used outside a unit of work.
func NewGormStopRepository(db *gorm.DB, tracker aggregateTracker) *GormStopRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}
	return &GormStopRepository{
		db:      db,
		tracker: tracker,
	}
}

// ListOrdered returns the stops of a route by (order_index, id).
func (r *GormStopRepository) ListOrdered(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID.Bytes()).
		Order("order_index, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list stops", err)
	}

	stops := make([]*stop.Stop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}

	// stop.Ordered is authoritative; the SQL ORDER BY only presorts.
	return stop.Ordered(stops), nil
}

// Get retrieves one stop of a route.
func (r *GormStopRepository) Get(ctx context.Context, routeID, stopID kernel.UUID) (*stop.Stop, error) {
	if err := errors.Join(routeID.Validate(), stopID.Validate()); err != nil {
		return nil, err
	}

	var dto StopDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND route_id = ?", stopID.Bytes(), routeID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stopId", stopID.String())
		}
		return nil, errs.NewPersistenceError("get stop", err)
	}

	return toDomain(dto)
}

// Add saves a new stop. The parent route must exist.
func (r *GormStopRepository) Add(ctx context.Context, aggregate *stop.Stop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolation:
				return errs.NewObjectNotFoundErrorWithCause("routeId", aggregate.RouteID().String(), err)
			case pgUniqueViolation:
				return errs.NewPreconditionFailedError("add stop", "stop "+aggregate.ID().String()+" already exists")
			}
		}
		return errs.NewPersistenceError("add stop", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateOrderIndex writes the order index of one stop.
func (r *GormStopRepository) UpdateOrderIndex(ctx context.Context, routeID, stopID kernel.UUID, index int) error {
	if err := errors.Join(routeID.Validate(), stopID.Validate()); err != nil {
		return err
	}
	if index < 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderIndex", fmt.Errorf("%d is negative", index))
	}

	result := r.db.WithContext(ctx).
		Model(&StopDTO{}).
		Where("id = ? AND route_id = ?", stopID.Bytes(), routeID.Bytes()).
		Updates(map[string]any{"order_index": index, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return errs.NewPersistenceError("update order index of "+stopID.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stopId", stopID.String())
	}

	r.tracker.TrackAggregate(stopID, nil)
	return nil
}

// UpdateSuspensions replaces the stored suspension list of a stop.
func (r *GormStopRepository) UpdateSuspensions(ctx context.Context, aggregate *stop.Stop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&StopDTO{}).
		Where("id = ? AND route_id = ?", aggregate.ID().Bytes(), aggregate.RouteID().Bytes()).
		Updates(map[string]any{
			"suspensions": suspensionsToJSON(aggregate.Suspensions()),
			"updated_at":  aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return errs.NewPersistenceError("update suspensions", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stopId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
