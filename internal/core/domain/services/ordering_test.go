package services_test

import (
	"fmt"
	"testing"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/services"
	"paperround/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeStops(t *testing.T, indices ...int) []*stop.Stop {
	t.Helper()
	routeID := kernel.NewUUID()
	out := make([]*stop.Stop, 0, len(indices))
	for i, idx := range indices {
		s, err := stop.RestoreStop(kernel.NewUUID(), routeID, fmt.Sprintf("s%d", i), "Calle", stop.Details{},
			idx, nil, createdAt, createdAt)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func labels(stops []*stop.Stop) []string {
	out := make([]string, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.Label())
	}
	return out
}

func storedIndices(stops []*stop.Stop) []int {
	out := make([]int, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.OrderIndex())
	}
	return out
}

func TestOrderingService_Append(t *testing.T) {
	svc := services.NewOrderingService()
	stops := routeStops(t, 0, 1, 2)
	newStop, err := stop.NewStop(kernel.NewUUID(), stops[0].RouteID(), "nuevo", "Calle 9", stop.Details{}, createdAt)
	require.NoError(t, err)

	r, err := svc.Append(stops, newStop)

	require.NoError(t, err)
	assert.Equal(t, 3, r.From)
	assert.Equal(t, 3, r.To)
	assert.Equal(t, 3, r.Stops[3].OrderIndex())
	assert.Equal(t, 0, newStop.OrderIndex(), "caller's stop is not modified")

	_, err = svc.Append(r.Stops, newStop)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
}

func TestOrderingService_AppendToEmptyRoute(t *testing.T) {
	newStop, _ := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), "nuevo", "Calle 9", stop.Details{}, createdAt)

	r, err := services.NewOrderingService().Append(nil, newStop)

	require.NoError(t, err)
	require.Len(t, r.Dirty(), 1)
	assert.Equal(t, 0, r.Dirty()[0].Index)
}

func TestOrderingService_SwapAdjacent(t *testing.T) {
	svc := services.NewOrderingService()

	t.Run("touches exactly two indices", func(t *testing.T) {
		stops := routeStops(t, 0, 1, 2, 3)

		r, err := svc.SwapAdjacent(stops, stops[2].ID(), services.Up)

		require.NoError(t, err)
		assert.Equal(t, []string{"s0", "s2", "s1", "s3"}, labels(r.Stops))
		assert.Equal(t, 1, r.From)
		assert.Equal(t, 2, r.To)
		assert.Len(t, r.Dirty(), 2)
		assert.Equal(t, []int{0, 1, 2, 3}, storedIndices(r.Stops))
		assert.Equal(t, []int{0, 1, 2, 3}, storedIndices(stops), "loaded stops are not modified")
	})

	t.Run("down from the top", func(t *testing.T) {
		stops := routeStops(t, 0, 1, 2)

		r, err := svc.SwapAdjacent(stops, stops[0].ID(), services.Down)

		require.NoError(t, err)
		assert.Equal(t, []string{"s1", "s0", "s2"}, labels(r.Stops))
	})

	t.Run("edges are preconditions", func(t *testing.T) {
		stops := routeStops(t, 0, 1, 2)

		_, err := svc.SwapAdjacent(stops, stops[0].ID(), services.Up)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

		_, err = svc.SwapAdjacent(stops, stops[2].ID(), services.Down)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("unknown stop is not found", func(t *testing.T) {
		_, err := svc.SwapAdjacent(routeStops(t, 0, 1), kernel.NewUUID(), services.Up)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("gapped indices widen the range", func(t *testing.T) {
		stops := routeStops(t, 10, 11, 12)

		r, err := svc.SwapAdjacent(stops, stops[2].ID(), services.Up)

		require.NoError(t, err)
		assert.Equal(t, 0, r.From)
		assert.Equal(t, 2, r.To)
		assert.Equal(t, []string{"s0", "s2", "s1"}, labels(stop.Ordered(r.Stops)))
	})
}

func TestOrderingService_MoveTo(t *testing.T) {
	svc := services.NewOrderingService()

	t.Run("moves down and reports the range", func(t *testing.T) {
		stops := routeStops(t, 0, 1, 2, 3, 4)

		r, err := svc.MoveTo(stops, stops[1].ID(), 4)

		require.NoError(t, err)
		assert.Equal(t, []string{"s0", "s2", "s3", "s1", "s4"}, labels(r.Stops))
		assert.Equal(t, 1, r.From)
		assert.Equal(t, 3, r.To)
	})

	t.Run("clamps the target", func(t *testing.T) {
		stops := routeStops(t, 0, 1, 2)

		r, err := svc.MoveTo(stops, stops[1].ID(), 99)
		require.NoError(t, err)
		assert.Equal(t, []string{"s0", "s2", "s1"}, labels(r.Stops))

		r, err = svc.MoveTo(stops, stops[1].ID(), -3)
		require.NoError(t, err)
		assert.Equal(t, []string{"s1", "s0", "s2"}, labels(r.Stops))
	})

	t.Run("moving onto itself is a no-op", func(t *testing.T) {
		stops := routeStops(t, 0, 1, 2)

		r, err := svc.MoveTo(stops, stops[1].ID(), 2)

		require.NoError(t, err)
		assert.True(t, r.IsNoop())
		assert.Empty(t, r.Dirty())
	})

	t.Run("round trip restores the order", func(t *testing.T) {
		for n := 1; n <= 6; n++ {
			for from := 0; from < n; from++ {
				for target := 1; target <= n; target++ {
					indices := make([]int, n)
					for i := range indices {
						indices[i] = i
					}
					stops := routeStops(t, indices...)
					moved := stops[from]

					there, err := svc.MoveTo(stops, moved.ID(), target)
					require.NoError(t, err)
					back, err := svc.MoveTo(there.Stops, moved.ID(), from+1)
					require.NoError(t, err)

					assert.Equal(t, labels(stops), labels(stop.Ordered(back.Stops)), "n=%d from=%d to=%d", n, from, target)
				}
			}
		}
	})

	t.Run("unknown stop is not found", func(t *testing.T) {
		_, err := svc.MoveTo(routeStops(t, 0), kernel.NewUUID(), 1)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrderingService_BulkReorder(t *testing.T) {
	svc := services.NewOrderingService()

	t.Run("reassigns every index", func(t *testing.T) {
		stops := routeStops(t, 3, 0, 7)
		requested := []kernel.UUID{stops[2].ID(), stops[0].ID(), stops[1].ID()}

		r, err := svc.BulkReorder(stops, requested)

		require.NoError(t, err)
		assert.Equal(t, []string{"s2", "s0", "s1"}, labels(r.Stops))
		assert.Equal(t, []int{0, 1, 2}, storedIndices(r.Stops))
		assert.Equal(t, 0, r.From)
		assert.Equal(t, 2, r.To)
	})

	t.Run("rejects anything but a permutation", func(t *testing.T) {
		stops := routeStops(t, 0, 1, 2)

		cases := map[string][]kernel.UUID{
			"missing":   {stops[0].ID(), stops[1].ID()},
			"unknown":   {stops[0].ID(), stops[1].ID(), kernel.NewUUID()},
			"duplicate": {stops[0].ID(), stops[1].ID(), stops[1].ID()},
			"extra":     {stops[0].ID(), stops[1].ID(), stops[2].ID(), kernel.NewUUID()},
		}
		for name, requested := range cases {
			_, err := svc.BulkReorder(stops, requested)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, name)
		}
	})

	t.Run("empty route is a no-op", func(t *testing.T) {
		r, err := svc.BulkReorder(nil, nil)

		require.NoError(t, err)
		assert.True(t, r.IsNoop())
	})
}

func TestParseDirection(t *testing.T) {
	d, err := services.ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, services.Up, d)

	_, err = services.ParseDirection("sideways")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
