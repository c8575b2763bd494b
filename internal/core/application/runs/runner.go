package runs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/model/summary"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"
	"paperround/internal/pkg/errs"
)

// HolidayCalendar hands out the cached holiday set.
type HolidayCalendar interface {
	Calendar(ctx context.Context) (services.HolidayFunc, error)
}

// Deps groups the collaborators of a Runner.
type Deps struct {
	Registry *Registry
	Stops    ports.StopRepository
	Routes   ports.RouteRepository
	Outcomes ports.OutcomeRepository
	Sessions ports.SessionStore
	Holidays HolidayCalendar
	Engine   services.EligibilityEngine
	Recorder SummaryRecorder
	Clock    ports.Clock
	Location *time.Location
	Logger   *slog.Logger
}

// Runner drives runs: it builds sessions from the route's eligible stops,
// applies operator actions, and persists each step before keeping it.
//
// Every action works on a clone of the route's session. The clone replaces
// the registered session only after its side effects are stored:
//
//	deliver/skip: outcome upsert, then cursor (or summary on the last stop)
//	back/jump:    cursor
//
// A failed write therefore never advances the in-memory cursor, and a retry
// re-issues the idempotent outcome write for the same stop.
type Runner struct {
	registry *Registry
	stops    ports.StopRepository
	routes   ports.RouteRepository
	outcomes ports.OutcomeRepository
	sessions ports.SessionStore
	holidays HolidayCalendar
	engine   services.EligibilityEngine
	recorder SummaryRecorder
	clock    ports.Clock
	location *time.Location
	logger   *slog.Logger
}

func NewRunner(d Deps) *Runner {
	if d.Registry == nil {
		d.Registry = NewRegistry()
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Runner{
		registry: d.Registry,
		stops:    d.Stops,
		routes:   d.Routes,
		outcomes: d.Outcomes,
		sessions: d.Sessions,
		holidays: d.Holidays,
		engine:   d.Engine,
		recorder: d.Recorder,
		clock:    d.Clock,
		location: d.Location,
		logger:   d.Logger.With("component", "run_engine"),
	}
}

// State is a route's run as seen by the operator. Session is nil while the
// run is NotStarted.
type State struct {
	Session        *run.Session
	CompletedToday bool
}

func (s State) Status() run.Status {
	if s.Session == nil {
		return run.NotStarted
	}
	return s.Session.Status()
}

// Step is the result of a deliver or skip. Summary is set when the step
// finished the run.
type Step struct {
	Session *run.Session
	Stop    *stop.Stop
	Summary *summary.Summary
}

// Today is the current calendar day in the configured time zone.
func (r *Runner) Today() kernel.Date {
	return kernel.DateOf(r.clock.Now(), r.location)
}

// Start starts or resumes the route's run for today.
//
// An Active in-memory session for today is returned untouched. Otherwise a
// persisted cursor is resumed, or a new session is created at cursor 0. An
// empty eligible list gives a Finished session and writes nothing.
func (r *Runner) Start(ctx context.Context, routeID kernel.UUID, accountID string) (State, error) {
	if _, err := r.visibleRoute(ctx, routeID, accountID); err != nil {
		return State{}, err
	}

	unlock := r.registry.Lock(routeID)
	defer unlock()

	persisted, err := r.sessions.Load(ctx, routeID)
	if err != nil {
		return State{}, errs.NewPersistenceError("load session", err)
	}
	today := r.Today()
	state := State{CompletedToday: persisted.CompletedOnDay(today)}

	if s := r.registered(routeID); s != nil && s.Status() == run.Active {
		state.Session = s
		return state, nil
	}

	if persisted.Cursor != nil {
		s, resumeErr := r.resume(ctx, routeID, persisted)
		if resumeErr != nil {
			return State{}, resumeErr
		}
		r.registry.Put(s)
		state.Session = s
		return state, nil
	}

	eligible, err := r.EligibleOn(ctx, routeID, today)
	if err != nil {
		return State{}, err
	}

	startedAt := r.clock.Now()
	s, err := run.NewSession(routeID, today, eligible, startedAt)
	if err != nil {
		return State{}, err
	}

	if s.Status() == run.Active {
		if err = r.sessions.MarkStarted(ctx, routeID, startedAt); err != nil {
			return State{}, errs.NewPersistenceError("mark started", err)
		}
		if err = r.sessions.SetCursor(ctx, routeID, s.Cursor(), s.Anchor()); err != nil {
			return State{}, errs.NewPersistenceError("set cursor", err)
		}
	}

	r.logger.InfoContext(ctx, "Run started",
		"route_id", routeID.String(), "date", today.String(), "stops", s.Len(), "status", s.Status().String())

	r.registry.Put(s)
	state.Session = s
	return state, nil
}

// Current returns the route's run without changing anything persisted.
func (r *Runner) Current(ctx context.Context, routeID kernel.UUID) (State, error) {
	unlock := r.registry.Lock(routeID)
	defer unlock()

	persisted, err := r.sessions.Load(ctx, routeID)
	if err != nil {
		return State{}, errs.NewPersistenceError("load session", err)
	}
	state := State{CompletedToday: persisted.CompletedOnDay(r.Today())}

	if s := r.registered(routeID); s != nil {
		state.Session = s
		return state, nil
	}
	if persisted.Cursor == nil {
		return state, nil
	}

	s, err := r.resume(ctx, routeID, persisted)
	if err != nil {
		return State{}, err
	}
	r.registry.Put(s)
	state.Session = s
	return state, nil
}

// Deliver records the current stop as delivered and advances.
func (r *Runner) Deliver(ctx context.Context, routeID kernel.UUID, accountID string, expected *kernel.UUID) (Step, error) {
	return r.record(ctx, routeID, accountID, expected, true, "")
}

// Skip records the current stop as skipped, with an optional reason, and
// advances.
func (r *Runner) Skip(
	ctx context.Context,
	routeID kernel.UUID,
	accountID string,
	expected *kernel.UUID,
	reason string,
) (Step, error) {
	return r.record(ctx, routeID, accountID, expected, false, reason)
}

func (r *Runner) record(
	ctx context.Context,
	routeID kernel.UUID,
	accountID string,
	expected *kernel.UUID,
	delivered bool,
	reason string,
) (Step, error) {
	unlock := r.registry.Lock(routeID)
	defer unlock()

	current, err := r.active(ctx, routeID)
	if err != nil {
		return Step{}, err
	}

	next := current.Clone()
	var visited *stop.Stop
	if delivered {
		visited, err = next.Deliver(expected)
	} else {
		visited, err = next.Skip(expected)
	}
	if err != nil {
		return Step{}, err
	}

	outcome, err := run.NewOutcome(routeID, next.Date(), visited.ID(), delivered, reason, r.clock.Now())
	if err != nil {
		return Step{}, err
	}
	if err = r.outcomes.Record(ctx, outcome); err != nil {
		return Step{}, errs.NewPersistenceError("record outcome", err)
	}

	step := Step{Session: next, Stop: visited}

	if next.Status() == run.Finished {
		if step.Summary, err = r.finish(ctx, next, accountID); err != nil {
			return Step{}, err
		}
	} else if err = r.sessions.SetCursor(ctx, routeID, next.Cursor(), next.Anchor()); err != nil {
		return Step{}, errs.NewPersistenceError("set cursor", err)
	}

	r.registry.Put(next)
	return step, nil
}

// finish saves the summary, then clears the cursor and marks the day as
// completed. Once the summary is stored the run is over; failures to clear
// the flags are logged and do not undo it.
func (r *Runner) finish(ctx context.Context, s *run.Session, accountID string) (*summary.Summary, error) {
	rt, err := r.routes.Get(ctx, s.RouteID())
	if err != nil {
		return nil, wrapRead("get route", err)
	}

	sum, err := r.recorder.Finish(ctx, s, accountID, rt.DisplayName())
	if err != nil {
		return nil, err
	}

	if clearErr := r.sessions.Clear(ctx, s.RouteID()); clearErr != nil {
		r.logger.WarnContext(ctx, "Failed to clear finished run", "route_id", s.RouteID().String(), "error", clearErr)
	}
	if markErr := r.sessions.MarkCompleted(ctx, s.RouteID(), s.Date()); markErr != nil {
		r.logger.WarnContext(ctx, "Failed to mark run completed", "route_id", s.RouteID().String(), "error", markErr)
	}

	r.logger.InfoContext(ctx, "Run finished",
		"route_id", s.RouteID().String(),
		"summary_id", sum.ID().String(),
		"delivered", len(sum.Delivered()),
		"skipped", len(sum.Skipped()),
	)
	return sum, nil
}

// Back steps the cursor back by one.
func (r *Runner) Back(ctx context.Context, routeID kernel.UUID) (*run.Session, error) {
	return r.move(ctx, routeID, (*run.Session).Back)
}

// JumpTo moves the cursor onto a stop of the snapshot.
func (r *Runner) JumpTo(ctx context.Context, routeID, stopID kernel.UUID) (*run.Session, error) {
	return r.move(ctx, routeID, func(s *run.Session) error { return s.JumpTo(stopID) })
}

func (r *Runner) move(ctx context.Context, routeID kernel.UUID, apply func(*run.Session) error) (*run.Session, error) {
	unlock := r.registry.Lock(routeID)
	defer unlock()

	current, err := r.active(ctx, routeID)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if err = apply(next); err != nil {
		return nil, err
	}
	if err = r.sessions.SetCursor(ctx, routeID, next.Cursor(), next.Anchor()); err != nil {
		return nil, errs.NewPersistenceError("set cursor", err)
	}

	r.registry.Put(next)
	return next, nil
}

// Reset discards the route's run. Recorded outcomes stay. confirmed must
// be true.
func (r *Runner) Reset(ctx context.Context, routeID kernel.UUID, confirmed bool) error {
	if !confirmed {
		return errs.NewPreconditionFailedError("reset", "operator confirmation is required")
	}

	unlock := r.registry.Lock(routeID)
	defer unlock()

	if err := r.sessions.Clear(ctx, routeID); err != nil {
		return errs.NewPersistenceError("clear session", err)
	}
	r.registry.Drop(routeID)

	r.logger.InfoContext(ctx, "Run reset", "route_id", routeID.String())
	return nil
}

// EligibleOn loads the route's stops and keeps the ones eligible on day, in
// route order.
func (r *Runner) EligibleOn(ctx context.Context, routeID kernel.UUID, day kernel.Date) ([]*stop.Stop, error) {
	stops, err := r.stops.ListOrdered(ctx, routeID)
	if err != nil {
		return nil, wrapRead("list stops", err)
	}

	isHoliday, err := r.holidays.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	engine := r.engine
	if engine.CarryWeekend().Enabled() && stop.WeekdayOf(day) == stop.Monday {
		ledger, ledgerErr := r.weekendLedger(ctx, routeID, day)
		if ledgerErr != nil {
			return nil, ledgerErr
		}
		engine = engine.WithWeekendLedger(ledger)
	}

	return engine.EligibleStops(stops, day, isHoliday), nil
}

type deliveryKey struct {
	stopID kernel.UUID
	date   kernel.Date
}

func (r *Runner) weekendLedger(ctx context.Context, routeID kernel.UUID, monday kernel.Date) (services.WeekendLedger, error) {
	delivered := map[deliveryKey]bool{}
	for _, back := range []int{-2, -1} {
		day := monday.AddDays(back)
		outcomes, err := r.outcomes.ListByRouteAndDate(ctx, routeID, day)
		if err != nil {
			return nil, wrapRead("list weekend outcomes", err)
		}
		for _, o := range outcomes {
			if o.Delivered() {
				delivered[deliveryKey{stopID: o.StopID(), date: day}] = true
			}
		}
	}
	return services.WeekendLedgerFunc(func(stopID kernel.UUID, date kernel.Date) bool {
		return delivered[deliveryKey{stopID: stopID, date: date}]
	}), nil
}

// active returns the route's session, resuming it from the persisted cursor
// after a restart. The caller holds the route lock.
func (r *Runner) active(ctx context.Context, routeID kernel.UUID) (*run.Session, error) {
	if s := r.registered(routeID); s != nil {
		return s, nil
	}

	persisted, err := r.sessions.Load(ctx, routeID)
	if err != nil {
		return nil, errs.NewPersistenceError("load session", err)
	}
	if persisted.Cursor == nil {
		return nil, errs.NewPreconditionFailedError("run", "run is not started")
	}

	s, err := r.resume(ctx, routeID, persisted)
	if err != nil {
		return nil, err
	}
	r.registry.Put(s)
	return s, nil
}

// registered returns the route's in-memory session when it belongs to today.
// A session left over from an earlier day is dropped. The caller holds the
// route lock.
func (r *Runner) registered(routeID kernel.UUID) *run.Session {
	s := r.registry.Get(routeID)
	if s == nil {
		return nil
	}
	if !s.Date().Equal(r.Today()) {
		r.registry.Drop(routeID)
		return nil
	}
	return s
}

func (r *Runner) resume(ctx context.Context, routeID kernel.UUID, persisted ports.SessionState) (*run.Session, error) {
	today := r.Today()

	eligible, err := r.EligibleOn(ctx, routeID, today)
	if err != nil {
		return nil, err
	}
	outcomes, err := r.outcomes.ListByRouteAndDate(ctx, routeID, today)
	if err != nil {
		return nil, wrapRead("list outcomes", err)
	}

	startedAt := persisted.StartedAt
	if startedAt.IsZero() {
		startedAt = r.clock.Now()
	}

	s, err := run.ResumeSession(routeID, today, eligible, startedAt,
		run.ResumePoint{Cursor: *persisted.Cursor, Anchor: persisted.Anchor}, outcomes)
	if err != nil {
		return nil, err
	}

	if s.Status() == run.Finished {
		// Nothing is eligible today, so the cursor has nothing to point at.
		if err = r.sessions.Clear(ctx, routeID); err != nil {
			return nil, errs.NewPersistenceError("clear session", err)
		}
		r.logger.InfoContext(ctx, "Resumed run has no eligible stops", "route_id", routeID.String(), "date", today.String())
		return s, nil
	}

	r.logger.InfoContext(ctx, "Run resumed",
		"route_id", routeID.String(), "cursor", s.Cursor(), "persisted_cursor", *persisted.Cursor)
	return s, nil
}

func (r *Runner) visibleRoute(ctx context.Context, routeID kernel.UUID, accountID string) (string, error) {
	rt, err := r.routes.Get(ctx, routeID)
	if err != nil {
		return "", wrapRead("get route", err)
	}
	if !rt.IsVisibleTo(accountID) {
		return "", errs.NewObjectNotFoundError("routeId", routeID.String())
	}
	return rt.DisplayName(), nil
}

// wrapRead keeps domain errors from a repository as they are and turns
// anything else into a PersistenceError.
func wrapRead(op string, err error) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, errs.ErrPersistence) {
		return err
	}
	return errs.NewPersistenceError(op, err)
}
