// Package holidayrepo reads the public holiday calendar shared by every
// route.
package holidayrepo

import (
	"context"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HolidayDTO is the holidays table row.
type HolidayDTO struct {
	Date datatypes.Date `gorm:"type:date;primaryKey"`
	Name string         `gorm:"type:varchar(255)"`
}

func (HolidayDTO) TableName() string {
	return "holidays"
}

// GormHolidayRepository implements ports.HolidaySource using GORM.
type GormHolidayRepository struct {
	db *gorm.DB
}

func NewGormHolidayRepository(db *gorm.DB) *GormHolidayRepository {
	return &GormHolidayRepository{db: db}
}

// ListHolidayDates returns every holiday in ascending order.
func (r *GormHolidayRepository) ListHolidayDates(ctx context.Context) ([]kernel.Date, error) {
	var dtos []HolidayDTO
	if err := r.db.WithContext(ctx).Order("date").Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("list holidays", err)
	}

	dates := make([]kernel.Date, 0, len(dtos))
	for _, dto := range dtos {
		dates = append(dates, kernel.DateOf(time.Time(dto.Date), time.UTC))
	}
	return dates, nil
}

// Put stores a holiday, renaming it when the date already exists.
func (r *GormHolidayRepository) Put(ctx context.Context, date kernel.Date, name string) error {
	if err := date.Validate(); err != nil {
		return err
	}

	dto := HolidayDTO{Date: datatypes.Date(date.Time(time.UTC)), Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceError("put holiday", err)
	}
	return nil
}
