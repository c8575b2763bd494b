package commands_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/application/usecases/commands"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/route"
	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/model/summary"
	"paperround/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const accountID = "acc-1"

var now = time.Date(2025, time.June, 9, 7, 0, 0, 0, time.UTC)

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

type MockStopUoW struct{ mock.Mock }

func (m *MockStopUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStopUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStopUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStopUoW) StopRepository() ports.StopRepository {
	args := m.Called()
	return args.Get(0).(ports.StopRepository)
}

type MockStopUoWFactory struct{ mock.Mock }

func (m *MockStopUoWFactory) Create() commands.StopUoW {
	args := m.Called()
	return args.Get(0).(commands.StopUoW)
}

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

type MockHolidayRefresher struct{ mock.Mock }

func (m *MockHolidayRefresher) Refresh(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// visibleRoute registers a route owned by accountID on repo.
func visibleRoute(t *testing.T, repo *MockRouteRepository) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	rt, err := route.RestoreRoute(id, accountID, "Centro", "")
	require.NoError(t, err)
	repo.On("Get", mock.Anything, id).Return(rt, nil)
	return id
}

// makeStops builds n stops stored at indices 0..n-1.
func makeStops(t *testing.T, routeID kernel.UUID, n int) []*stop.Stop {
	t.Helper()
	stops := make([]*stop.Stop, 0, n)
	for i := range n {
		s, err := stop.RestoreStop(kernel.NewUUID(), routeID,
			fmt.Sprintf("label%d", i+1), fmt.Sprintf("Calle %d", i+1),
			stop.Details{}, i, nil, now, now)
		require.NoError(t, err)
		stops = append(stops, s)
	}
	return stops
}

// newStopUoW wires a UoW mock whose repository is repo.
func newStopUoW(repo *MockStopRepository) (*MockStopUoWFactory, *MockStopUoW) {
	uow := new(MockStopUoW)
	uow.On("StopRepository").Return(repo)
	factory := new(MockStopUoWFactory)
	factory.On("Create").Return(uow)
	return factory, uow
}
