// Package outcomerepo stores the per-stop outcome of every run day.
package outcomerepo

import (
	"context"
	"errors"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/run"
	"paperround/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutcomeDTO is the run_outcomes table row, keyed by (route, date, stop).
type OutcomeDTO struct {
	RouteID    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Date       datatypes.Date `gorm:"type:date;primaryKey"`
	StopID     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Delivered  bool           `gorm:"not null"`
	Reason     string         `gorm:"type:varchar(200)"`
	RecordedAt time.Time      `gorm:"not null"`
}

func (OutcomeDTO) TableName() string {
	return "run_outcomes"
}

func fromDomain(o run.Outcome) OutcomeDTO {
	return OutcomeDTO{
		RouteID:    o.RouteID().Bytes(),
		Date:       datatypes.Date(o.Date().Time(time.UTC)),
		StopID:     o.StopID().Bytes(),
		Delivered:  o.Delivered(),
		Reason:     o.Reason(),
		RecordedAt: o.RecordedAt(),
	}
}

func toDomain(dto OutcomeDTO) (run.Outcome, error) {
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return run.Outcome{}, err
	}
	stopID, err := kernel.UUIDFromBytes(dto.StopID[:])
	if err != nil {
		return run.Outcome{}, err
	}
	return run.NewOutcome(
		routeID,
		kernel.DateOf(time.Time(dto.Date), time.UTC),
		stopID,
		dto.Delivered,
		dto.Reason,
		dto.RecordedAt,
	)
}

// GormOutcomeRepository implements ports.OutcomeRepository using GORM.
type GormOutcomeRepository struct {
	db *gorm.DB
}

func NewGormOutcomeRepository(db *gorm.DB) *GormOutcomeRepository {
	return &GormOutcomeRepository{db: db}
}

// Record upserts the outcome; a second record for the same key overwrites
// delivered, reason and recorded_at.
func (r *GormOutcomeRepository) Record(ctx context.Context, o run.Outcome) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "route_id"}, {Name: "date"}, {Name: "stop_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"delivered", "reason", "recorded_at",
			}),
		}).
		Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceError("record outcome of "+o.StopID().String(), err)
	}
	return nil
}

// ListByRouteAndDate returns the outcomes of one route on one day in
// recording order.
func (r *GormOutcomeRepository) ListByRouteAndDate(
	ctx context.Context,
	routeID kernel.UUID,
	date kernel.Date,
) ([]run.Outcome, error) {
	if err := errors.Join(routeID.Validate(), date.Validate()); err != nil {
		return nil, err
	}

	var dtos []OutcomeDTO
	err := r.db.WithContext(ctx).
		Where("route_id = ? AND date = ?", routeID.Bytes(), datatypes.Date(date.Time(time.UTC))).
		Order("recorded_at, stop_id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list outcomes", err)
	}

	outcomes := make([]run.Outcome, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}
