package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"
	"paperround/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const reorderWriteConcurrency = 8

// ReorderStopsCommandHandler applies a full new order.
//
// The index writes are independent and go out concurrently, without a
// transaction. A failed write does not stop the others. All failures are
// reported together and the client is expected to reload the route,
// because the stored order may now be partly updated.
type ReorderStopsCommandHandler struct {
	stops    ports.StopRepository
	routes   ports.RouteRepository
	ordering services.OrderingService
	logger   *slog.Logger
}

func NewReorderStopsCommandHandler(
	stops ports.StopRepository,
	routes ports.RouteRepository,
	ordering services.OrderingService,
	logger *slog.Logger,
) ReorderStopsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ReorderStopsCommandHandler{
		stops:    stops,
		routes:   routes,
		ordering: ordering,
		logger:   logger.With("component", "reorder_stops"),
	}
}

func (h *ReorderStopsCommandHandler) Handle(ctx context.Context, cmd ReorderStopsCommand) ([]*stop.Stop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireRoute(ctx, h.routes, cmd.routeScope); err != nil {
		return nil, err
	}

	current, err := h.stops.ListOrdered(ctx, cmd.RouteID())
	if err != nil {
		return nil, err
	}

	plan, err := h.ordering.BulkReorder(current, cmd.Order())
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		failed []string
		causes []error
	)

	g := new(errgroup.Group)
	g.SetLimit(reorderWriteConcurrency)
	for _, d := range plan.Dirty() {
		g.Go(func() error {
			if writeErr := h.stops.UpdateOrderIndex(ctx, cmd.RouteID(), d.Stop.ID(), d.Index); writeErr != nil {
				mu.Lock()
				failed = append(failed, d.Stop.ID().String())
				causes = append(causes, fmt.Errorf("stop %s: %w", d.Stop.ID(), writeErr))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) > 0 {
		h.logger.ErrorContext(ctx, "Reorder partly failed",
			"route_id", cmd.RouteID().String(), "failed", len(failed), "total", len(plan.Dirty()))
		return nil, errs.NewPersistenceError("reorder stops "+strings.Join(failed, ", "), errors.Join(causes...))
	}

	return plan.Stops, nil
}
