package runs_test

import (
	"context"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/route"
	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/model/summary"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockStopRepository struct{ mock.Mock }

func (m *MockStopRepository) ListOrdered(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stop.Stop), args.Error(1)
}

func (m *MockStopRepository) Get(ctx context.Context, routeID, stopID kernel.UUID) (*stop.Stop, error) {
	args := m.Called(ctx, routeID, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stop.Stop), args.Error(1)
}

func (m *MockStopRepository) Add(ctx context.Context, s *stop.Stop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStopRepository) UpdateOrderIndex(ctx context.Context, routeID, stopID kernel.UUID, index int) error {
	return m.Called(ctx, routeID, stopID, index).Error(0)
}

func (m *MockStopRepository) UpdateSuspensions(ctx context.Context, s *stop.Stop) error {
	return m.Called(ctx, s).Error(0)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Get(ctx context.Context, routeID kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

type MockOutcomeRepository struct{ mock.Mock }

func (m *MockOutcomeRepository) Record(ctx context.Context, o run.Outcome) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOutcomeRepository) ListByRouteAndDate(
	ctx context.Context,
	routeID kernel.UUID,
	date kernel.Date,
) ([]run.Outcome, error) {
	args := m.Called(ctx, routeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]run.Outcome), args.Error(1)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Load(ctx context.Context, routeID kernel.UUID) (ports.SessionState, error) {
	args := m.Called(ctx, routeID)
	return args.Get(0).(ports.SessionState), args.Error(1)
}

func (m *MockSessionStore) SetCursor(ctx context.Context, routeID kernel.UUID, cursor int, anchor *kernel.UUID) error {
	return m.Called(ctx, routeID, cursor, anchor).Error(0)
}

func (m *MockSessionStore) MarkStarted(ctx context.Context, routeID kernel.UUID, startedAt time.Time) error {
	return m.Called(ctx, routeID, startedAt).Error(0)
}

func (m *MockSessionStore) MarkCompleted(ctx context.Context, routeID kernel.UUID, date kernel.Date) error {
	return m.Called(ctx, routeID, date).Error(0)
}

func (m *MockSessionStore) Clear(ctx context.Context, routeID kernel.UUID) error {
	return m.Called(ctx, routeID).Error(0)
}

func (m *MockSessionStore) ResetCompleted(ctx context.Context, before kernel.Date) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

type MockSummaryRepository struct{ mock.Mock }

func (m *MockSummaryRepository) Save(ctx context.Context, s *summary.Summary) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSummaryRepository) List(ctx context.Context, accountID string) ([]*summary.Summary, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*summary.Summary), args.Error(1)
}

func (m *MockSummaryRepository) Get(ctx context.Context, id kernel.UUID) (*summary.Summary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*summary.Summary), args.Error(1)
}

func (m *MockSummaryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockHolidayCalendar struct{ mock.Mock }

func (m *MockHolidayCalendar) Calendar(ctx context.Context) (services.HolidayFunc, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(services.HolidayFunc), args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func anchorOf(id kernel.UUID) any {
	return mock.MatchedBy(func(a *kernel.UUID) bool { return a != nil && a.IsEqual(id) })
}

func outcomeFor(stopID kernel.UUID, delivered bool) any {
	return mock.MatchedBy(func(o run.Outcome) bool { return o.StopID().IsEqual(stopID) && o.Delivered() == delivered })
}
