package cmd

import (
	"log/slog"
	"time"

	httpadapter "paperround/internal/adapters/in/http"
	"paperround/internal/adapters/out/postgres"
	"paperround/internal/adapters/out/postgres/holidayrepo"
	"paperround/internal/adapters/out/postgres/outcomerepo"
	"paperround/internal/adapters/out/postgres/routerepo"
	"paperround/internal/adapters/out/postgres/stoprepo"
	"paperround/internal/adapters/out/postgres/summaryrepo"
	"paperround/internal/core/application/holidays"
	"paperround/internal/core/application/runs"
	"paperround/internal/core/application/usecases/commands"
	"paperround/internal/core/application/usecases/queries"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"
	"paperround/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	sessions   ports.SessionStore
	routes     *routerepo.GormRouteRepository
	summaries  *summaryrepo.GormSummaryRepository
	holidays   *holidays.Lookup
	runner     *runs.Runner
	ordering   services.OrderingService
	clock      ports.Clock
	schedules  jobs.Schedules
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	sessions ports.SessionStore,
	location *time.Location,
	logger *slog.Logger,
) *CompositionRoot {
	clock := ports.SystemClock{}
	summaries := summaryrepo.NewGormSummaryRepository(gormDB)
	routes := routerepo.NewGormRouteRepository(gormDB)
	lookup := holidays.NewLookup(holidayrepo.NewGormHolidayRepository(gormDB))

	runner := runs.NewRunner(runs.Deps{
		Stops:    stoprepo.NewGormStopRepository(gormDB, nil),
		Routes:   routes,
		Outcomes: outcomerepo.NewGormOutcomeRepository(gormDB),
		Sessions: sessions,
		Holidays: lookup,
		Engine:   services.NewEligibilityEngine(services.NewCarryWeekendRule(cfg.CarryWeekendToMonday)),
		Recorder: runs.NewSummaryRecorder(summaries, clock),
		Clock:    clock,
		Location: location,
		Logger:   logger,
	})

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		sessions:   sessions,
		routes:     routes,
		summaries:  summaries,
		holidays:   lookup,
		runner:     runner,
		ordering:   services.NewOrderingService(),
		clock:      clock,
		schedules: jobs.Schedules{
			HolidayRefresh: cfg.HolidayRefreshSchedule,
			CompletedReset: cfg.CompletedResetSchedule,
		},
		logger: logger,
	}
}

func (c *CompositionRoot) stopUoWFactory() commands.StopUoWFactory {
	return FuncStopUoWFactory(func() commands.StopUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStartRunCommandHandler() commands.StartRunCommandHandler {
	return commands.NewStartRunCommandHandler(c.runner)
}

func (c *CompositionRoot) CreateDeliverStopCommandHandler() commands.DeliverStopCommandHandler {
	return commands.NewDeliverStopCommandHandler(c.runner, c.routes)
}

func (c *CompositionRoot) CreateSkipStopCommandHandler() commands.SkipStopCommandHandler {
	return commands.NewSkipStopCommandHandler(c.runner, c.routes)
}

func (c *CompositionRoot) CreateStepBackCommandHandler() commands.StepBackCommandHandler {
	return commands.NewStepBackCommandHandler(c.runner, c.routes)
}

func (c *CompositionRoot) CreateJumpToStopCommandHandler() commands.JumpToStopCommandHandler {
	return commands.NewJumpToStopCommandHandler(c.runner, c.routes)
}

func (c *CompositionRoot) CreateResetRunCommandHandler() commands.ResetRunCommandHandler {
	return commands.NewResetRunCommandHandler(c.runner, c.routes)
}

func (c *CompositionRoot) CreateAddStopCommandHandler() commands.AddStopCommandHandler {
	return commands.NewAddStopCommandHandler(c.stopUoWFactory(), c.routes, c.ordering, c.clock)
}

func (c *CompositionRoot) CreateSwapStopCommandHandler() commands.SwapStopCommandHandler {
	return commands.NewSwapStopCommandHandler(c.stopUoWFactory(), c.routes, c.ordering)
}

func (c *CompositionRoot) CreateMoveStopCommandHandler() commands.MoveStopCommandHandler {
	return commands.NewMoveStopCommandHandler(c.stopUoWFactory(), c.routes, c.ordering)
}

// CreateReorderStopsCommandHandler writes outside a transaction; see the
// handler for the partial-failure contract.
func (c *CompositionRoot) CreateReorderStopsCommandHandler() commands.ReorderStopsCommandHandler {
	return commands.NewReorderStopsCommandHandler(
		stoprepo.NewGormStopRepository(c.gormDB, nil), c.routes, c.ordering, c.logger)
}

func (c *CompositionRoot) CreateSetStopSuspensionsCommandHandler() commands.SetStopSuspensionsCommandHandler {
	return commands.NewSetStopSuspensionsCommandHandler(c.stopUoWFactory(), c.routes, c.clock)
}

func (c *CompositionRoot) CreateDeleteSummaryCommandHandler() commands.DeleteSummaryCommandHandler {
	return commands.NewDeleteSummaryCommandHandler(c.summaries)
}

func (c *CompositionRoot) CreateRefreshHolidaysCommandHandler() commands.RefreshHolidaysCommandHandler {
	return commands.NewRefreshHolidaysCommandHandler(c.holidays)
}

func (c *CompositionRoot) CreateGetRunQueryHandler() queries.GetRunQueryHandler {
	return queries.NewGetRunQueryHandler(c.runner, c.routes)
}

func (c *CompositionRoot) CreateSearchRunStopsQueryHandler() queries.SearchRunStopsQueryHandler {
	return queries.NewSearchRunStopsQueryHandler(c.runner, c.routes)
}

func (c *CompositionRoot) CreateListEligibleStopsQueryHandler() queries.ListEligibleStopsQueryHandler {
	return queries.NewListEligibleStopsQueryHandler(c.runner, c.routes)
}

func (c *CompositionRoot) CreateListSummariesQueryHandler() queries.ListSummariesQueryHandler {
	return queries.NewListSummariesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSummaryQueryHandler() queries.GetSummaryQueryHandler {
	return queries.NewGetSummaryQueryHandler(c.summaries)
}

// CreateServer wires every handler into the HTTP server.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		StartRun:       c.CreateStartRunCommandHandler(),
		DeliverStop:    c.CreateDeliverStopCommandHandler(),
		SkipStop:       c.CreateSkipStopCommandHandler(),
		StepBack:       c.CreateStepBackCommandHandler(),
		JumpToStop:     c.CreateJumpToStopCommandHandler(),
		ResetRun:       c.CreateResetRunCommandHandler(),
		AddStop:        c.CreateAddStopCommandHandler(),
		SwapStop:       c.CreateSwapStopCommandHandler(),
		MoveStop:       c.CreateMoveStopCommandHandler(),
		ReorderStops:   c.CreateReorderStopsCommandHandler(),
		SetSuspensions: c.CreateSetStopSuspensionsCommandHandler(),
		DeleteSummary:  c.CreateDeleteSummaryCommandHandler(),
		RefreshHoliday: c.CreateRefreshHolidaysCommandHandler(),
		GetRun:         c.CreateGetRunQueryHandler(),
		SearchRun:      c.CreateSearchRunStopsQueryHandler(),
		ListEligible:   c.CreateListEligibleStopsQueryHandler(),
		ListSummaries:  c.CreateListSummariesQueryHandler(),
		GetSummary:     c.CreateGetSummaryQueryHandler(),
	}, c.logger)
}

// CreateJobManager wires the scheduled jobs. The completed flags live in
// the session store.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	refresh := c.CreateRefreshHolidaysCommandHandler()
	return jobs.NewJobManager(&refresh, c.sessions, c.runner.Today, c.schedules, c.logger)
}

type FuncStopUoWFactory func() commands.StopUoW

func (f FuncStopUoWFactory) Create() commands.StopUoW {
	return f()
}
