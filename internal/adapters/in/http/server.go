package http

import (
	"context"
	"log/slog"
	"net/http"

	"paperround/internal/core/application/runs"
	"paperround/internal/core/application/usecases/commands"
	"paperround/internal/core/application/usecases/queries"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/run"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	StartRun       commands.StartRunCommandHandler
	DeliverStop    commands.DeliverStopCommandHandler
	SkipStop       commands.SkipStopCommandHandler
	StepBack       commands.StepBackCommandHandler
	JumpToStop     commands.JumpToStopCommandHandler
	ResetRun       commands.ResetRunCommandHandler
	AddStop        commands.AddStopCommandHandler
	SwapStop       commands.SwapStopCommandHandler
	MoveStop       commands.MoveStopCommandHandler
	ReorderStops   commands.ReorderStopsCommandHandler
	SetSuspensions commands.SetStopSuspensionsCommandHandler
	DeleteSummary  commands.DeleteSummaryCommandHandler
	RefreshHoliday commands.RefreshHolidaysCommandHandler

	GetRun        queries.GetRunQueryHandler
	SearchRun     queries.SearchRunStopsQueryHandler
	ListEligible  queries.ListEligibleStopsQueryHandler
	ListSummaries queries.ListSummariesQueryHandler
	GetSummary    queries.GetSummaryQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: handlers, logger: logger.With("component", "http")}
}

// Register installs middleware, the API document and every route on e.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return err
	}

	e.HideBanner = true
	e.Validator = newBodyValidator()
	e.HTTPErrorHandler = errorHandler(s.logger)
	e.Use(tracing(), validate)

	e.GET("/health", s.Health)
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openAPIDocument)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	api := e.Group("/api/v1")

	r := api.Group("/routes/:routeId")
	r.POST("/run", s.StartRun)
	r.GET("/run", s.GetRun)
	r.DELETE("/run", s.ResetRun)
	r.POST("/run/deliver", s.DeliverStop)
	r.POST("/run/skip", s.SkipStop)
	r.POST("/run/back", s.StepBack)
	r.POST("/run/jump", s.JumpToStop)
	r.GET("/run/search", s.SearchRun)
	r.GET("/eligible", s.ListEligible)
	r.POST("/stops", s.AddStop)
	r.PUT("/stops/order", s.ReorderStops)
	r.POST("/stops/:stopId/swap", s.SwapStop)
	r.POST("/stops/:stopId/move", s.MoveStop)
	r.PUT("/stops/:stopId/suspensions", s.SetSuspensions)

	api.GET("/summaries", s.ListSummaries)
	api.GET("/summaries/:summaryId", s.GetSummary)
	api.DELETE("/summaries/:summaryId", s.DeleteSummary)
	api.POST("/holidays/refresh", s.RefreshHolidays)

	return nil
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// routeRequest reads the account header and the route id shared by every
// /routes/{routeId} endpoint.
func routeRequest(c echo.Context) (string, kernel.UUID, error) {
	account, err := accountID(c)
	if err != nil {
		return "", kernel.UUID{}, err
	}
	routeID, err := uuidParam(c, "routeId")
	if err != nil {
		return "", kernel.UUID{}, err
	}
	return account, routeID, nil
}

// StartRun handles POST /api/v1/routes/{routeId}/run - starts or resumes today's run.
func (s *Server) StartRun(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewStartRunCommand(account, routeID)
	if err != nil {
		return err
	}

	state, err := s.h.StartRun.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, runViewResponse(queries.RunViewOf(routeID, state)))
}

// GetRun handles GET /api/v1/routes/{routeId}/run.
func (s *Server) GetRun(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetRunQuery(account, routeID)
	if err != nil {
		return err
	}

	view, err := s.h.GetRun.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, runViewResponse(view))
}

// DeliverStop handles POST /api/v1/routes/{routeId}/run/deliver.
func (s *Server) DeliverStop(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	var body visitRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	expected, err := expectedStop(body.ExpectedStopID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeliverStopCommand(account, routeID, expected)
	if err != nil {
		return err
	}

	step, err := s.h.DeliverStop.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stepResponse(routeID, step))
}

// SkipStop handles POST /api/v1/routes/{routeId}/run/skip.
func (s *Server) SkipStop(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	var body visitRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	expected, err := expectedStop(body.ExpectedStopID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSkipStopCommand(account, routeID, expected, body.Reason)
	if err != nil {
		return err
	}

	step, err := s.h.SkipStop.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stepResponse(routeID, step))
}

// StepBack handles POST /api/v1/routes/{routeId}/run/back.
func (s *Server) StepBack(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewStepBackCommand(account, routeID)
	if err != nil {
		return err
	}

	session, err := s.h.StepBack.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse(routeID, session))
}

// JumpToStop handles POST /api/v1/routes/{routeId}/run/jump.
func (s *Server) JumpToStop(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	var body jumpRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	stopID, err := uuidValue("stopId", body.StopID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewJumpToStopCommand(account, routeID, stopID)
	if err != nil {
		return err
	}

	session, err := s.h.JumpToStop.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse(routeID, session))
}

// ResetRun handles DELETE /api/v1/routes/{routeId}/run?confirm=true.
func (s *Server) ResetRun(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	var confirm bool
	if err = queryParam(c, "confirm", true, &confirm); err != nil {
		return err
	}
	cmd, err := commands.NewResetRunCommand(account, routeID, confirm)
	if err != nil {
		return err
	}

	if err = s.h.ResetRun.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchRun handles GET /api/v1/routes/{routeId}/run/search?q=.
func (s *Server) SearchRun(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	var text string
	if err = queryParam(c, "q", true, &text); err != nil {
		return err
	}
	query, err := queries.NewSearchRunStopsQuery(account, routeID, text)
	if err != nil {
		return err
	}

	views, err := s.h.SearchRun.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stopViewsResponse(views))
}

// ListEligible handles GET /api/v1/routes/{routeId}/eligible?date=YYYY-MM-DD.
func (s *Server) ListEligible(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	var raw *string
	if err = queryParam(c, "date", false, &raw); err != nil {
		return err
	}
	day, err := parseOptionalDate(raw)
	if err != nil {
		return err
	}
	query, err := queries.NewListEligibleStopsQuery(account, routeID, day)
	if err != nil {
		return err
	}

	res, err := s.h.ListEligible.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eligibleResponse{
		Date:        res.Date.String(),
		TotalCopies: res.TotalCopies,
		Stops:       stopViewsResponse(res.Stops),
	})
}

// AddStop handles POST /api/v1/routes/{routeId}/stops - appends a stop.
func (s *Server) AddStop(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	var body newStopRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	details, err := body.details()
	if err != nil {
		return err
	}
	cmd, err := commands.NewAddStopCommand(account, routeID, body.Label, body.Address, details)
	if err != nil {
		return err
	}

	added, err := s.h.AddStop.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stopDomainResponse(added))
}

// SwapStop handles POST /api/v1/routes/{routeId}/stops/{stopId}/swap.
func (s *Server) SwapStop(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	stopID, err := uuidParam(c, "stopId")
	if err != nil {
		return err
	}
	var body swapRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	direction, err := services.ParseDirection(body.Direction)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSwapStopCommand(account, routeID, stopID, direction)
	if err != nil {
		return err
	}

	stops, err := s.h.SwapStop.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stopsDomainResponse(stops))
}

// MoveStop handles POST /api/v1/routes/{routeId}/stops/{stopId}/move.
func (s *Server) MoveStop(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	stopID, err := uuidParam(c, "stopId")
	if err != nil {
		return err
	}
	var body moveRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewMoveStopCommand(account, routeID, stopID, body.Position)
	if err != nil {
		return err
	}

	stops, err := s.h.MoveStop.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stopsDomainResponse(stops))
}

// ReorderStops handles PUT /api/v1/routes/{routeId}/stops/order.
func (s *Server) ReorderStops(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	var body reorderRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	order := make([]kernel.UUID, 0, len(body.Order))
	for _, raw := range body.Order {
		id, idErr := uuidValue("order", raw)
		if idErr != nil {
			return idErr
		}
		order = append(order, id)
	}
	cmd, err := commands.NewReorderStopsCommand(account, routeID, order)
	if err != nil {
		return err
	}

	stops, err := s.h.ReorderStops.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stopsDomainResponse(stops))
}

// SetSuspensions handles PUT /api/v1/routes/{routeId}/stops/{stopId}/suspensions.
// The body replaces the stop's whole suspension list.
func (s *Server) SetSuspensions(c echo.Context) error {
	account, routeID, err := routeRequest(c)
	if err != nil {
		return err
	}
	stopID, err := uuidParam(c, "stopId")
	if err != nil {
		return err
	}
	var body suspensionsRequest
	if err = bindBody(c, &body); err != nil {
		return err
	}
	suspensions, err := body.suspensions()
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetStopSuspensionsCommand(account, routeID, stopID, suspensions)
	if err != nil {
		return err
	}

	updated, err := s.h.SetSuspensions.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stopDomainResponse(updated))
}

// ListSummaries handles GET /api/v1/summaries?q= - newest first.
func (s *Server) ListSummaries(c echo.Context) error {
	account, err := accountID(c)
	if err != nil {
		return err
	}
	var filter *string
	if err = queryParam(c, "q", false, &filter); err != nil {
		return err
	}
	text := ""
	if filter != nil {
		text = *filter
	}
	query, err := queries.NewListSummariesQuery(account, text)
	if err != nil {
		return err
	}

	views, err := s.h.ListSummaries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	out := make([]summaryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, summaryViewResponse(v))
	}
	return c.JSON(http.StatusOK, out)
}

// GetSummary handles GET /api/v1/summaries/{summaryId}.
func (s *Server) GetSummary(c echo.Context) error {
	account, err := accountID(c)
	if err != nil {
		return err
	}
	summaryID, err := uuidParam(c, "summaryId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetSummaryQuery(account, summaryID)
	if err != nil {
		return err
	}

	view, err := s.h.GetSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryViewResponse(view))
}

// DeleteSummary handles DELETE /api/v1/summaries/{summaryId}.
func (s *Server) DeleteSummary(c echo.Context) error {
	account, err := accountID(c)
	if err != nil {
		return err
	}
	summaryID, err := uuidParam(c, "summaryId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteSummaryCommand(account, summaryID)
	if err != nil {
		return err
	}

	if err = s.h.DeleteSummary.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RefreshHolidays handles POST /api/v1/holidays/refresh.
func (s *Server) RefreshHolidays(c echo.Context) error {
	n, err := s.h.RefreshHoliday.Handle(c.Request().Context(), commands.NewRefreshHolidaysCommand())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, refreshResponse{Holidays: n})
}

func expectedStop(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuidValue("expectedStopId", *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// stepResponse renders the run after a deliver or skip. The summary is
// attached when the step finished the run.
func stepResponse(routeID kernel.UUID, step runs.Step) runResponse {
	out := runViewResponse(queries.RunViewOf(routeID, runs.State{
		Session:        step.Session,
		CompletedToday: step.Summary != nil,
	}))
	if step.Summary != nil {
		sum := summaryDomainResponse(step.Summary)
		out.Summary = &sum
	}
	return out
}

func sessionResponse(routeID kernel.UUID, session *run.Session) runResponse {
	return runViewResponse(queries.RunViewOf(routeID, runs.State{Session: session}))
}

// details converts the request into stop attributes. Field validation
// beyond shape is left to the stop constructor.
func (r newStopRequest) details() (stop.Details, error) {
	d := stop.Details{
		Note:      r.Note,
		Reference: r.Reference,
		Tag:       r.Tag,
		Copies:    r.Copies,
	}

	if r.Lat != nil && r.Lng != nil {
		p, err := kernel.NewGeoPoint(*r.Lat, *r.Lng)
		if err != nil {
			return stop.Details{}, err
		}
		d.GeoPoint = &p
	}

	if r.Schedule != nil {
		days := make(map[stop.Weekday]bool, len(r.Schedule.Days))
		for name, on := range r.Schedule.Days {
			w, err := stop.ParseWeekday(name)
			if err != nil {
				return stop.Details{}, err
			}
			days[w] = on
		}
		sched, err := stop.NewWeeklySchedule(days, stop.HolidayPolicy{
			Holidays:             r.Schedule.Holidays,
			NeverOnHolidays:      r.Schedule.NeverOnHolidays,
			CarryWeekendToMonday: r.Schedule.CarryWeekendToMonday,
		})
		if err != nil {
			return stop.Details{}, err
		}
		d.Schedule = &sched
	}

	from, err := parseOptionalDate(r.ActiveFrom)
	if err != nil {
		return stop.Details{}, err
	}
	until, err := parseOptionalDate(r.ActiveUntil)
	if err != nil {
		return stop.Details{}, err
	}
	if d.Activity, err = stop.NewActivityWindow(from, until); err != nil {
		return stop.Details{}, err
	}

	return d, nil
}

func (r suspensionsRequest) suspensions() ([]stop.Suspension, error) {
	out := make([]stop.Suspension, 0, len(r.Suspensions))
	for _, raw := range r.Suspensions {
		from, err := kernel.ParseDate(raw.From)
		if err != nil {
			return nil, err
		}
		until, err := kernel.ParseDate(raw.Until)
		if err != nil {
			return nil, err
		}
		s, err := stop.NewSuspension(from, until)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
