package stop

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
)

const (
	minCopies = 1
	maxCopies = 999
)

var (
	// ErrStopIsNotConstructed is returned when a Stop instance was not created
	// through NewStop or RestoreStop.
	ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop constructor")
)

// Details carries the optional attributes of a stop.
//
// Copies is the number of newspapers left at the stop; zero means one.
type Details struct {
	Note      string
	Reference string
	Tag       string
	Copies    int
	GeoPoint  *kernel.GeoPoint
	Schedule  *WeeklySchedule
	Activity  ActivityWindow
}

// Stop is one delivery address of a route. It is the aggregate that the
// eligibility rules evaluate and the run walks over.
//
// Stop follows these invariants:
//   - Must have valid stop and route identifiers
//   - Label (the customer) and address are non-blank
//   - Copies is within [1, 999]
//   - orderIndex is not negative; it need not be unique or contiguous, rank
//     is always re-derived with Ordered
//   - Suspensions are well formed (from <= until)
//
// A nil schedule means the delivery pattern is unknown and the stop is
// delivered every day.
type Stop struct {
	id          kernel.UUID
	routeID     kernel.UUID
	label       string
	address     string
	details     Details
	orderIndex  int
	suspensions []Suspension
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewStop creates a stop that has not been placed in the route yet; its
// order index is assigned by the ordering service on append.
//
// Example:
//
//	s, err := stop.NewStop(kernel.NewUUID(), routeID, "Bar Pepe", "Calle Mayor 3",
//	    stop.Details{Tag: "BAR", Copies: 2}, time.Now())
func NewStop(id, routeID kernel.UUID, label, address string, details Details, now time.Time) (*Stop, error) {
	s := &Stop{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setRouteID(routeID),
		s.setLabel(label),
		s.setAddress(address),
		s.setDetails(details),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStop rebuilds a stop read from storage.
func RestoreStop(
	id, routeID kernel.UUID,
	label, address string,
	details Details,
	orderIndex int,
	suspensions []Suspension,
	createdAt, updatedAt time.Time,
) (*Stop, error) {
	s := &Stop{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setRouteID(routeID),
		s.setLabel(label),
		s.setAddress(address),
		s.setDetails(details),
		s.setOrderIndex(orderIndex),
		s.setSuspensions(suspensions),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Stop was built by a constructor.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

// IsEqual compares stops by identity.
func (s *Stop) IsEqual(other *Stop) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Stop) ID() kernel.UUID {
	return s.id
}

func (s *Stop) RouteID() kernel.UUID {
	return s.routeID
}

// Label is the customer name shown to the operator and written to summaries.
func (s *Stop) Label() string {
	return s.label
}

func (s *Stop) Address() string {
	return s.address
}

func (s *Stop) Note() string {
	return s.details.Note
}

// Reference is free text such as the portal or floor.
func (s *Stop) Reference() string {
	return s.details.Reference
}

// Tag is a free-text category (BAR, KIOSK, ...).
func (s *Stop) Tag() string {
	return s.details.Tag
}

func (s *Stop) Copies() int {
	return s.details.Copies
}

func (s *Stop) GeoPoint() *kernel.GeoPoint {
	if s.details.GeoPoint == nil {
		return nil
	}
	p := *s.details.GeoPoint
	return &p
}

// Schedule returns nil when the delivery pattern is unknown.
func (s *Stop) Schedule() *WeeklySchedule {
	if s.details.Schedule == nil {
		return nil
	}
	sched := *s.details.Schedule
	return &sched
}

func (s *Stop) Activity() ActivityWindow {
	return s.details.Activity
}

func (s *Stop) OrderIndex() int {
	return s.orderIndex
}

// Suspensions returns a copy of the suspension list.
func (s *Stop) Suspensions() []Suspension {
	return slices.Clone(s.suspensions)
}

func (s *Stop) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Stop) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsSuspendedOn reports whether any suspension contains d.
func (s *Stop) IsSuspendedOn(d kernel.Date) bool {
	for _, susp := range s.suspensions {
		if susp.Contains(d) {
			return true
		}
	}
	return false
}

// SetOrderIndex places the stop at index. Used by the ordering service only.
func (s *Stop) SetOrderIndex(index int) error {
	return s.setOrderIndex(index)
}

// ReplaceSuspensions swaps the whole suspension list. Nothing changes when
// any entry is invalid.
func (s *Stop) ReplaceSuspensions(suspensions []Suspension, now time.Time) error {
	if err := s.setSuspensions(suspensions); err != nil {
		return err
	}
	s.updatedAt = now
	return nil
}

// Clone returns an independent copy.
func (s *Stop) Clone() *Stop {
	c := *s
	c.suspensions = slices.Clone(s.suspensions)
	return &c
}

func (s *Stop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stop) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}
	s.routeID = routeID
	return nil
}

func (s *Stop) setLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	s.label = label
	return nil
}

func (s *Stop) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	s.address = address
	return nil
}

func (s *Stop) setDetails(d Details) error {
	if d.Copies == 0 {
		d.Copies = minCopies
	}
	if d.Copies < minCopies || d.Copies > maxCopies {
		return errs.NewValueIsOutOfRangeError("copies", d.Copies, minCopies, maxCopies)
	}
	if d.GeoPoint != nil {
		if err := d.GeoPoint.Validate(); err != nil {
			return err
		}
		p := *d.GeoPoint
		d.GeoPoint = &p
	}
	if d.Schedule != nil {
		sched := *d.Schedule
		d.Schedule = &sched
	}
	d.Note = strings.TrimSpace(d.Note)
	d.Reference = strings.TrimSpace(d.Reference)
	d.Tag = strings.TrimSpace(d.Tag)

	s.details = d
	return nil
}

func (s *Stop) setOrderIndex(index int) error {
	if index < 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderIndex", fmt.Errorf("%d is negative", index))
	}
	s.orderIndex = index
	return nil
}

func (s *Stop) setSuspensions(suspensions []Suspension) error {
	for i, susp := range suspensions {
		if err := susp.Validate(); err != nil {
			return fmt.Errorf("suspension %d: %w", i, err)
		}
	}
	s.suspensions = slices.Clone(suspensions)
	return nil
}
