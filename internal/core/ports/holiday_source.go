package ports

import (
	"context"

	"paperround/internal/core/domain/model/kernel"
)

// HolidaySource supplies the raw holiday calendar. It is read once and
// cached by the caller.
type HolidaySource interface {
	ListHolidayDates(ctx context.Context) ([]kernel.Date, error)
}
