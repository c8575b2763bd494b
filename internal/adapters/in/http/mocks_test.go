package http_test

import (
	"context"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/route"
	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/model/summary"

	"github.com/stretchr/testify/mock"
)

type MockRunEngine struct{ mock.Mock }

func (m *MockRunEngine) Start(ctx context.Context, routeID kernel.UUID, accountID string) (runs.State, error) {
	args := m.Called(ctx, routeID, accountID)
	return args.Get(0).(runs.State), args.Error(1)
}

func (m *MockRunEngine) Deliver(
	ctx context.Context,
	routeID kernel.UUID,
	accountID string,
	expected *kernel.UUID,
) (runs.Step, error) {
	args := m.Called(ctx, routeID, accountID, expected)
	return args.Get(0).(runs.Step), args.Error(1)
}

func (m *MockRunEngine) Skip(
	ctx context.Context,
	routeID kernel.UUID,
	accountID string,
	expected *kernel.UUID,
	reason string,
) (runs.Step, error) {
	args := m.Called(ctx, routeID, accountID, expected, reason)
	return args.Get(0).(runs.Step), args.Error(1)
}

func (m *MockRunEngine) Back(ctx context.Context, routeID kernel.UUID) (*run.Session, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.Session), args.Error(1)
}

func (m *MockRunEngine) JumpTo(ctx context.Context, routeID, stopID kernel.UUID) (*run.Session, error) {
	args := m.Called(ctx, routeID, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.Session), args.Error(1)
}

func (m *MockRunEngine) Reset(ctx context.Context, routeID kernel.UUID, confirmed bool) error {
	return m.Called(ctx, routeID, confirmed).Error(0)
}

type MockRunReader struct{ mock.Mock }

func (m *MockRunReader) Current(ctx context.Context, routeID kernel.UUID) (runs.State, error) {
	args := m.Called(ctx, routeID)
	return args.Get(0).(runs.State), args.Error(1)
}

func (m *MockRunReader) EligibleOn(ctx context.Context, routeID kernel.UUID, day kernel.Date) ([]*stop.Stop, error) {
	args := m.Called(ctx, routeID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stop.Stop), args.Error(1)
}

func (m *MockRunReader) Today() kernel.Date {
	return m.Called().Get(0).(kernel.Date)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Get(ctx context.Context, routeID kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
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

type MockHolidayRefresher struct{ mock.Mock }

func (m *MockHolidayRefresher) Refresh(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
