package services

import (
	"fmt"
	"slices"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/pkg/errs"
)

// Direction of an adjacent swap.
type Direction int

const (
	Up Direction = iota + 1
	Down
)

// ParseDirection accepts "up" and "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not up or down", s))
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Reordering is the result of an ordering operation: the full new order and
// the contiguous, 0-based range [From, To] of positions whose stored index
// must be rewritten. The stored index of the stop at position i is i.
// An empty range (To < From) means nothing changed.
type Reordering struct {
	Stops []*stop.Stop
	From  int
	To    int
}

// IsNoop reports an empty dirty range.
func (r Reordering) IsNoop() bool {
	return r.To < r.From
}

// Dirty returns the stops in the dirty range paired with their new index.
func (r Reordering) Dirty() []IndexedStop {
	if r.IsNoop() {
		return nil
	}
	out := make([]IndexedStop, 0, r.To-r.From+1)
	for i := r.From; i <= r.To; i++ {
		out = append(out, IndexedStop{Stop: r.Stops[i], Index: i})
	}
	return out
}

// IndexedStop is a stop with the index it must be stored at.
type IndexedStop struct {
	Stop  *stop.Stop
	Index int
}

// OrderingService keeps the total order of a route's stops.
//
// Every operation works on the stops currently loaded, re-derives their
// rank with stop.Ordered, and returns the smallest range that must be
// persisted. When stored indices have gaps or duplicates the range is
// widened to also cover every position whose stored index differs from its
// rank, so the stored order matches the returned one after the write.
//
// The service never drops a stop: unknown ids are reported, not skipped.
type OrderingService struct{}

func NewOrderingService() OrderingService {
	return OrderingService{}
}

// Append places s after the last stop, at index len(stops). The appended
// copy is Stops[len(stops)] of the result.
func (o OrderingService) Append(stops []*stop.Stop, s *stop.Stop) (Reordering, error) {
	if err := s.Validate(); err != nil {
		return Reordering{}, err
	}
	ordered := stop.Ordered(stops)
	if slices.ContainsFunc(ordered, s.IsEqual) {
		return Reordering{}, errs.NewPreconditionFailedError("append", fmt.Sprintf("stop %s is already in the route", s.ID()))
	}

	n := len(ordered)
	return widen(append(ordered, s), n, n), nil
}

// SwapAdjacent exchanges a stop with its predecessor (Up) or successor
// (Down). Exactly two positions change.
func (o OrderingService) SwapAdjacent(stops []*stop.Stop, stopID kernel.UUID, dir Direction) (Reordering, error) {
	ordered := stop.Ordered(stops)
	from, err := position(ordered, stopID)
	if err != nil {
		return Reordering{}, err
	}

	var to int
	switch dir {
	case Up:
		to = from - 1
	case Down:
		to = from + 1
	default:
		return Reordering{}, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%d is not up or down", dir))
	}
	if to < 0 || to >= len(ordered) {
		return Reordering{}, errs.NewPreconditionFailedError(
			"swap",
			fmt.Sprintf("stop %s is already the %s stop", stopID, edgeName(dir)),
		)
	}

	ordered[from], ordered[to] = ordered[to], ordered[from]
	return widen(ordered, min(from, to), max(from, to)), nil
}

func edgeName(dir Direction) string {
	if dir == Up {
		return "first"
	}
	return "last"
}

// MoveTo removes a stop and reinserts it at target, a 1-based position
// clamped to [1, len]. Moving a stop onto its own position changes nothing.
func (o OrderingService) MoveTo(stops []*stop.Stop, stopID kernel.UUID, target int) (Reordering, error) {
	ordered := stop.Ordered(stops)
	from, err := position(ordered, stopID)
	if err != nil {
		return Reordering{}, err
	}

	to := max(1, min(target, len(ordered))) - 1
	if to == from {
		return widen(ordered, 0, -1), nil
	}

	moved := ordered[from]
	ordered = slices.Delete(ordered, from, from+1)
	ordered = slices.Insert(ordered, to, moved)
	return widen(ordered, min(from, to), max(from, to)), nil
}

// BulkReorder takes a full new order, typically from drag and drop, and
// reassigns indices 0..n-1. requested must be a permutation of the loaded
// stops.
func (o OrderingService) BulkReorder(current []*stop.Stop, requested []kernel.UUID) (Reordering, error) {
	byID := make(map[kernel.UUID]*stop.Stop, len(current))
	for _, s := range current {
		byID[s.ID()] = s
	}

	if len(requested) != len(current) {
		return Reordering{}, errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("got %d stops, route has %d", len(requested), len(current)),
		)
	}

	seen := make(map[kernel.UUID]struct{}, len(requested))
	ordered := make([]*stop.Stop, 0, len(requested))
	for _, id := range requested {
		s, ok := byID[id]
		if !ok {
			return Reordering{}, errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("stop %s is not in the route", id))
		}
		if _, dup := seen[id]; dup {
			return Reordering{}, errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("stop %s is listed twice", id))
		}
		seen[id] = struct{}{}
		ordered = append(ordered, s)
	}

	return reindex(ordered, 0, len(ordered)-1), nil
}

func position(ordered []*stop.Stop, stopID kernel.UUID) (int, error) {
	idx := slices.IndexFunc(ordered, func(s *stop.Stop) bool { return s.ID().IsEqual(stopID) })
	if idx < 0 {
		return 0, errs.NewObjectNotFoundError("stopId", stopID.String())
	}
	return idx, nil
}

// widen extends [from, to] over every position whose stored index is not
// its rank, then reindexes that range.
func widen(ordered []*stop.Stop, from, to int) Reordering {
	for i, s := range ordered {
		if s.OrderIndex() == i {
			continue
		}
		if from > to {
			from, to = i, i
			continue
		}
		from, to = min(from, i), max(to, i)
	}
	return reindex(ordered, from, to)
}

// reindex replaces the stops in [from, to] with copies stored at their
// position. Stops passed in by the caller are never modified.
func reindex(ordered []*stop.Stop, from, to int) Reordering {
	for i := from; i <= to; i++ {
		c := ordered[i].Clone()
		_ = c.SetOrderIndex(i)
		ordered[i] = c
	}
	return Reordering{Stops: ordered, From: from, To: to}
}
