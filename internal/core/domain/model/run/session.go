package run

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/textfold"
)

// Session is one operator's walk over a route's eligible stops for a day.
//
// The eligible list is a snapshot taken when the session is created and is
// never re-filtered or reordered afterwards, even if the route changes
// while the run is Active. The cursor indexes that snapshot; cursor N
// (one past the last stop) means the run is Finished.
//
// Session invariants:
//   - 0 <= cursor <= N; cursor == N only when Finished
//   - deliver and skip always act on the stop at the cursor
//   - delivered and skipped are append-only; back() does not retract
//   - a failed action leaves the session untouched
//
// Session is not safe for concurrent use. Callers mutate a Clone and keep
// it only once the side effects of the action have been persisted.
type Session struct {
	routeID   kernel.UUID
	date      kernel.Date
	stops     []*stop.Stop
	cursor    int
	startedAt time.Time
	delivered []string
	skipped   []string
	status    Status
}

// ResumePoint is what survives a restart: the persisted cursor and,
// when known, the id of the stop it pointed at.
type ResumePoint struct {
	Cursor int
	Anchor *kernel.UUID
}

// NewSession starts a run over eligible, which must already be filtered and
// ordered. An empty list yields a Finished session.
//
// Example:
//
//	eligible := engine.EligibleStops(stops, today, lookup.IsHoliday)
//	session, err := run.NewSession(routeID, today, eligible, clock.Now())
func NewSession(routeID kernel.UUID, date kernel.Date, eligible []*stop.Stop, startedAt time.Time) (*Session, error) {
	s, err := newSession(routeID, date, eligible, startedAt)
	if err != nil {
		return nil, err
	}

	if len(s.stops) == 0 {
		s.status = Finished
		return s, nil
	}

	if s.status, err = NotStarted.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// ResumeSession rebuilds a run after a restart.
//
// The cursor is re-anchored on the stop the persisted anchor points at when
// that stop is still in the snapshot; otherwise it is clamped to [0, N-1].
// Labels for the stops before the cursor are rebuilt from today's recorded
// outcomes so the final summary stays complete.
func ResumeSession(
	routeID kernel.UUID,
	date kernel.Date,
	eligible []*stop.Stop,
	startedAt time.Time,
	point ResumePoint,
	outcomes []Outcome,
) (*Session, error) {
	s, err := NewSession(routeID, date, eligible, startedAt)
	if err != nil || s.status == Finished {
		return s, err
	}

	s.cursor = s.resolveCursor(point)

	byStop := make(map[kernel.UUID]Outcome, len(outcomes))
	for _, o := range outcomes {
		if o.Date().Equal(date) {
			byStop[o.StopID()] = o
		}
	}
	for _, st := range s.stops[:s.cursor] {
		o, ok := byStop[st.ID()]
		if !ok {
			continue
		}
		if o.Delivered() {
			s.delivered = append(s.delivered, st.Label())
		} else {
			s.skipped = append(s.skipped, st.Label())
		}
	}

	return s, nil
}

func newSession(routeID kernel.UUID, date kernel.Date, eligible []*stop.Stop, startedAt time.Time) (*Session, error) {
	var errList []error
	if err := routeID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("routeId", err))
	}
	if err := date.Validate(); err != nil {
		errList = append(errList, err)
	}
	if startedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("startedAt"))
	}

	snapshot := make([]*stop.Stop, 0, len(eligible))
	for i, st := range eligible {
		if err := st.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("eligible stop %d: %w", i, err))
			continue
		}
		snapshot = append(snapshot, st.Clone())
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Session{
		routeID:   routeID,
		date:      date,
		stops:     snapshot,
		startedAt: startedAt,
		delivered: []string{},
		skipped:   []string{},
		status:    NotStarted,
	}, nil
}

func (s *Session) resolveCursor(point ResumePoint) int {
	if point.Anchor != nil {
		if idx := s.indexOf(*point.Anchor); idx >= 0 {
			return idx
		}
	}
	return max(0, min(point.Cursor, len(s.stops)-1))
}

func (s *Session) indexOf(stopID kernel.UUID) int {
	return slices.IndexFunc(s.stops, func(st *stop.Stop) bool {
		return st.ID().IsEqual(stopID)
	})
}

// Clone returns a copy that can be mutated independently. Stops in the
// snapshot are shared; they are never modified by the session.
func (s *Session) Clone() *Session {
	c := *s
	c.stops = slices.Clone(s.stops)
	c.delivered = slices.Clone(s.delivered)
	c.skipped = slices.Clone(s.skipped)
	return &c
}

func (s *Session) RouteID() kernel.UUID {
	return s.routeID
}

// Date is the calendar day the snapshot was filtered for.
func (s *Session) Date() kernel.Date {
	return s.date
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

func (s *Session) Status() Status {
	return s.status
}

func (s *Session) Cursor() int {
	return s.cursor
}

// Len is N, the number of eligible stops.
func (s *Session) Len() int {
	return len(s.stops)
}

// Stops returns the snapshot in walk order.
func (s *Session) Stops() []*stop.Stop {
	return slices.Clone(s.stops)
}

func (s *Session) Delivered() []string {
	return slices.Clone(s.delivered)
}

func (s *Session) Skipped() []string {
	return slices.Clone(s.skipped)
}

// Current returns the stop at the cursor while the run is Active.
func (s *Session) Current() (*stop.Stop, bool) {
	if s.status != Active || s.cursor >= len(s.stops) {
		return nil, false
	}
	return s.stops[s.cursor], true
}

// Anchor is the id of the current stop, persisted next to the cursor.
func (s *Session) Anchor() *kernel.UUID {
	cur, ok := s.Current()
	if !ok {
		return nil
	}
	id := cur.ID()
	return &id
}

// Previous returns the stop before the cursor, if any.
func (s *Session) Previous() (*stop.Stop, bool) {
	idx := s.cursor - 1
	if idx < 0 || idx >= len(s.stops) {
		return nil, false
	}
	return s.stops[idx], true
}

// Upcoming returns up to n stops after the current one.
func (s *Session) Upcoming(n int) []*stop.Stop {
	from := s.cursor + 1
	if n <= 0 || from >= len(s.stops) {
		return []*stop.Stop{}
	}
	return slices.Clone(s.stops[from:min(from+n, len(s.stops))])
}

// Remaining counts the stops after the current one.
func (s *Session) Remaining() int {
	if s.status != Active {
		return 0
	}
	return max(0, len(s.stops)-s.cursor-1)
}

// TotalCopies is the number of newspapers needed for the whole snapshot.
func (s *Session) TotalCopies() int {
	total := 0
	for _, st := range s.stops {
		total += st.Copies()
	}
	return total
}

// Search returns up to limit stops of the snapshot whose label or address
// contains text, ignoring case and accents.
func (s *Session) Search(text string, limit int) []*stop.Stop {
	out := []*stop.Stop{}
	if limit <= 0 {
		return out
	}
	for _, st := range s.stops {
		if textfold.Contains(st.Label(), text) || textfold.Contains(st.Address(), text) {
			out = append(out, st)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Deliver records the current stop as delivered and advances the cursor.
// When expected is set it must be the current stop. Reaching the end moves
// the run to Finished.
func (s *Session) Deliver(expected *kernel.UUID) (*stop.Stop, error) {
	return s.advance("deliver", expected, true)
}

// Skip is Deliver for a stop that did not get the newspaper.
func (s *Session) Skip(expected *kernel.UUID) (*stop.Stop, error) {
	return s.advance("skip", expected, false)
}

func (s *Session) advance(action string, expected *kernel.UUID, delivered bool) (*stop.Stop, error) {
	if err := s.status.RequireActive(action); err != nil {
		return nil, err
	}
	cur, ok := s.Current()
	if !ok {
		return nil, errs.NewPreconditionFailedError(action, "no current stop")
	}
	if expected != nil && !expected.IsEqual(cur.ID()) {
		return nil, errs.NewPreconditionFailedError(
			action,
			fmt.Sprintf("stop %s is not the current stop %s", expected, cur.ID()),
		)
	}

	if delivered {
		s.delivered = append(s.delivered, cur.Label())
	} else {
		s.skipped = append(s.skipped, cur.Label())
	}
	s.cursor++

	if s.cursor == len(s.stops) {
		next, err := s.status.Finish()
		if err != nil {
			return nil, err
		}
		s.status = next
	}
	return cur, nil
}

// Back steps the cursor back by one. Labels already recorded stay.
func (s *Session) Back() error {
	if err := s.status.RequireActive("back"); err != nil {
		return err
	}
	if s.cursor == 0 {
		return errs.NewPreconditionFailedError("back", "already at the first stop")
	}
	s.cursor--
	return nil
}

// JumpTo moves the cursor onto stopID without recording anything.
func (s *Session) JumpTo(stopID kernel.UUID) error {
	if err := s.status.RequireActive("jump"); err != nil {
		return err
	}
	idx := s.indexOf(stopID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("stopId", stopID.String())
	}
	s.cursor = idx
	return nil
}
