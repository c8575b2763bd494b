// Package summaryrepo stores end-of-run summaries.
package summaryrepo

import (
	"context"
	"errors"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/summary"
	"paperround/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SummaryDTO is the run_summaries table row. Delivered and skipped hold
// customer labels in visit order.
type SummaryDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AccountID  string         `gorm:"type:varchar(128);not null;index:idx_summaries_account_finished,priority:1"`
	RouteID    uuid.UUID      `gorm:"type:uuid;not null"`
	RouteName  string         `gorm:"type:varchar(255);not null"`
	Date       datatypes.Date `gorm:"type:date;not null"`
	StartedAt  time.Time      `gorm:"not null"`
	FinishedAt time.Time      `gorm:"not null;index:idx_summaries_account_finished,priority:2,sort:desc"`
	Delivered  pq.StringArray `gorm:"type:text[];not null"`
	Skipped    pq.StringArray `gorm:"type:text[];not null"`
}

func (SummaryDTO) TableName() string {
	return "run_summaries"
}

func fromDomain(s *summary.Summary) SummaryDTO {
	return SummaryDTO{
		ID:         s.ID().Bytes(),
		AccountID:  s.AccountID(),
		RouteID:    s.RouteID().Bytes(),
		RouteName:  s.RouteName(),
		Date:       datatypes.Date(s.Date().Time(time.UTC)),
		StartedAt:  s.StartedAt(),
		FinishedAt: s.FinishedAt(),
		Delivered:  pq.StringArray(s.Delivered()),
		Skipped:    pq.StringArray(s.Skipped()),
	}
}

func toDomain(dto SummaryDTO) (*summary.Summary, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}
	return summary.RestoreSummary(id, summary.Params{
		AccountID:  dto.AccountID,
		RouteID:    routeID,
		RouteName:  dto.RouteName,
		Date:       kernel.DateOf(time.Time(dto.Date), time.UTC),
		StartedAt:  dto.StartedAt,
		FinishedAt: dto.FinishedAt,
		Delivered:  dto.Delivered,
		Skipped:    dto.Skipped,
	})
}

// GormSummaryRepository implements ports.SummaryRepository using GORM.
type GormSummaryRepository struct {
	db *gorm.DB
}

func NewGormSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db}
}

// Save stores a new summary.
func (r *GormSummaryRepository) Save(ctx context.Context, aggregate *summary.Summary) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("save summary", err)
	}
	return nil
}

// List returns the account's summaries, most recently finished first.
func (r *GormSummaryRepository) List(ctx context.Context, accountID string) ([]*summary.Summary, error) {
	var dtos []SummaryDTO
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("finished_at DESC, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list summaries", err)
	}

	out := make([]*summary.Summary, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Get retrieves a summary by ID.
func (r *GormSummaryRepository) Get(ctx context.Context, id kernel.UUID) (*summary.Summary, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SummaryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("summaryId", id.String())
		}
		return nil, errs.NewPersistenceError("get summary", err)
	}

	return toDomain(dto)
}

// Delete removes a summary for good.
func (r *GormSummaryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&SummaryDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewPersistenceError("delete summary", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("summaryId", id.String())
	}
	return nil
}
