package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/route"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/model/summary"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const accountID = "acc-1"

var now = time.Date(2025, time.June, 9, 7, 0, 0, 0, time.UTC)

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

func routeOwnedBy(t *testing.T, repo *MockRouteRepository, owner string) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	rt, err := route.RestoreRoute(id, owner, "Centro", "")
	require.NoError(t, err)
	repo.On("Get", mock.Anything, id).Return(rt, nil)
	return id
}

func makeStops(t *testing.T, routeID kernel.UUID, labels ...string) []*stop.Stop {
	t.Helper()
	stops := make([]*stop.Stop, 0, len(labels))
	for i, label := range labels {
		s, err := stop.RestoreStop(kernel.NewUUID(), routeID,
			label, fmt.Sprintf("Calle %d", i+1),
			stop.Details{Copies: i + 1}, i, nil, now, now)
		require.NoError(t, err)
		stops = append(stops, s)
	}
	return stops
}

func monday(t *testing.T) kernel.Date {
	t.Helper()
	d, err := kernel.NewDate(2025, time.June, 9)
	require.NoError(t, err)
	return d
}
