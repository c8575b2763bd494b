package http

import (
	"time"

	"paperround/internal/core/application/usecases/queries"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/model/summary"

	"github.com/go-playground/validator/v10"
)

// bodyValidator plugs validator/v10 into echo's Context.Validate.
type bodyValidator struct {
	validate *validator.Validate
}

func newBodyValidator() *bodyValidator {
	return &bodyValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *bodyValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

type visitRequest struct {
	ExpectedStopID *string `json:"expectedStopId" validate:"omitempty,uuid"`
	Reason         string  `json:"reason" validate:"max=200"`
}

type jumpRequest struct {
	StopID string `json:"stopId" validate:"required,uuid"`
}

type scheduleRequest struct {
	Days                 map[string]bool `json:"days" validate:"dive,keys,oneof=sunday monday tuesday wednesday thursday friday saturday,endkeys"`
	Holidays             bool            `json:"holidays"`
	NeverOnHolidays      bool            `json:"neverOnHolidays"`
	CarryWeekendToMonday bool            `json:"carryWeekendToMonday"`
}

type newStopRequest struct {
	Label       string           `json:"label" validate:"required"`
	Address     string           `json:"address" validate:"required"`
	Note        string           `json:"note"`
	Reference   string           `json:"reference"`
	Tag         string           `json:"tag" validate:"max=64"`
	Copies      int              `json:"copies" validate:"omitempty,min=1,max=999"`
	Lat         *float64         `json:"lat" validate:"required_with=Lng,omitempty,latitude"`
	Lng         *float64         `json:"lng" validate:"required_with=Lat,omitempty,longitude"`
	Schedule    *scheduleRequest `json:"schedule"`
	ActiveFrom  *string          `json:"activeFrom" validate:"omitempty,datetime=2006-01-02"`
	ActiveUntil *string          `json:"activeUntil" validate:"omitempty,datetime=2006-01-02"`
}

type swapRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type moveRequest struct {
	Position int `json:"position" validate:"required,min=1"`
}

type reorderRequest struct {
	Order []string `json:"order" validate:"required,min=1,dive,uuid"`
}

type suspensionRequest struct {
	From  string `json:"from" validate:"required,datetime=2006-01-02"`
	Until string `json:"until" validate:"required,datetime=2006-01-02"`
}

type suspensionsRequest struct {
	Suspensions []suspensionRequest `json:"suspensions" validate:"dive"`
}

type stopResponse struct {
	ID         string   `json:"id"`
	OrderIndex int      `json:"orderIndex"`
	Label      string   `json:"label"`
	Address    string   `json:"address"`
	Note       string   `json:"note,omitempty"`
	Reference  string   `json:"reference,omitempty"`
	Tag        string   `json:"tag,omitempty"`
	Copies     int      `json:"copies"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

type runResponse struct {
	RouteID        string           `json:"routeId"`
	Date           *string          `json:"date,omitempty"`
	Status         string           `json:"status"`
	Cursor         int              `json:"cursor"`
	Total          int              `json:"total"`
	Current        *stopResponse    `json:"current,omitempty"`
	Previous       *stopResponse    `json:"previous,omitempty"`
	Upcoming       []stopResponse   `json:"upcoming"`
	Remaining      int              `json:"remaining"`
	TotalCopies    int              `json:"totalCopies"`
	Delivered      []string         `json:"delivered"`
	Skipped        []string         `json:"skipped"`
	CompletedToday bool             `json:"completedToday"`
	Summary        *summaryResponse `json:"summary,omitempty"`
}

type eligibleResponse struct {
	Date        string         `json:"date"`
	TotalCopies int            `json:"totalCopies"`
	Stops       []stopResponse `json:"stops"`
}

type summaryResponse struct {
	ID              string    `json:"id"`
	RouteID         string    `json:"routeId"`
	RouteName       string    `json:"routeName"`
	Date            string    `json:"date"`
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	Delivered       []string  `json:"delivered"`
	Skipped         []string  `json:"skipped"`
	Total           int       `json:"total"`
	DurationMinutes int       `json:"durationMinutes"`
}

type refreshResponse struct {
	Holidays int `json:"holidays"`
}

func stopViewResponse(v queries.StopView) stopResponse {
	out := stopResponse{
		ID:         v.ID.String(),
		OrderIndex: v.OrderIndex,
		Label:      v.Label,
		Address:    v.Address,
		Note:       v.Note,
		Reference:  v.Reference,
		Tag:        v.Tag,
		Copies:     v.Copies,
	}
	if v.GeoPoint != nil {
		lat, lng := v.GeoPoint.Lat(), v.GeoPoint.Lng()
		out.Lat, out.Lng = &lat, &lng
	}
	return out
}

func stopViewsResponse(views []queries.StopView) []stopResponse {
	out := make([]stopResponse, 0, len(views))
	for _, v := range views {
		out = append(out, stopViewResponse(v))
	}
	return out
}

func stopDomainResponse(s *stop.Stop) stopResponse {
	return stopViewResponse(queries.StopView{
		ID:         s.ID(),
		OrderIndex: s.OrderIndex(),
		Label:      s.Label(),
		Address:    s.Address(),
		Note:       s.Note(),
		Reference:  s.Reference(),
		Tag:        s.Tag(),
		Copies:     s.Copies(),
		GeoPoint:   s.GeoPoint(),
	})
}

func stopsDomainResponse(stops []*stop.Stop) []stopResponse {
	out := make([]stopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, stopDomainResponse(s))
	}
	return out
}

func runViewResponse(v queries.GetRunQueryResponse) runResponse {
	out := runResponse{
		RouteID:        v.RouteID.String(),
		Status:         v.Status.String(),
		Cursor:         v.Cursor,
		Total:          v.Total,
		Upcoming:       stopViewsResponse(v.Upcoming),
		Remaining:      v.Remaining,
		TotalCopies:    v.TotalCopies,
		Delivered:      nonNil(v.Delivered),
		Skipped:        nonNil(v.Skipped),
		CompletedToday: v.CompletedToday,
	}
	if v.Date != nil {
		d := v.Date.String()
		out.Date = &d
	}
	if v.Current != nil {
		cur := stopViewResponse(*v.Current)
		out.Current = &cur
	}
	if v.Previous != nil {
		prev := stopViewResponse(*v.Previous)
		out.Previous = &prev
	}
	return out
}

func summaryViewResponse(v queries.SummaryView) summaryResponse {
	return summaryResponse{
		ID:              v.ID.String(),
		RouteID:         v.RouteID.String(),
		RouteName:       v.RouteName,
		Date:            v.Date.String(),
		StartedAt:       v.StartedAt,
		FinishedAt:      v.FinishedAt,
		Delivered:       nonNil(v.Delivered),
		Skipped:         nonNil(v.Skipped),
		Total:           v.Total(),
		DurationMinutes: v.DurationMinutes(),
	}
}

func summaryDomainResponse(s *summary.Summary) summaryResponse {
	return summaryViewResponse(queries.SummaryView{
		ID:         s.ID(),
		RouteID:    s.RouteID(),
		RouteName:  s.RouteName(),
		Date:       s.Date(),
		StartedAt:  s.StartedAt(),
		FinishedAt: s.FinishedAt(),
		Delivered:  s.Delivered(),
		Skipped:    s.Skipped(),
	})
}

func nonNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}

// parseOptionalDate turns an optional YYYY-MM-DD string into a date.
func parseOptionalDate(s *string) (*kernel.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := kernel.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
