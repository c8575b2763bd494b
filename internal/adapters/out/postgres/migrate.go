package postgres

import (
	"fmt"

	"paperround/internal/adapters/out/postgres/holidayrepo"
	"paperround/internal/adapters/out/postgres/outcomerepo"
	"paperround/internal/adapters/out/postgres/routerepo"
	"paperround/internal/adapters/out/postgres/stoprepo"
	"paperround/internal/adapters/out/postgres/summaryrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table of the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&routerepo.RouteDTO{},
		&stoprepo.StopDTO{},
		&holidayrepo.HolidayDTO{},
		&outcomerepo.OutcomeDTO{},
		&summaryrepo.SummaryDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
