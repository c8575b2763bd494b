// Package stoprepo persists the stops of a route together with their
// schedule, activity window and suspensions.
package stoprepo

import (
	"errors"
	"fmt"
	"time"

	"paperround/internal/adapters/out/postgres/routerepo"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StopDTO is the stops table row. Schedule is NULL for a stop whose
// delivery pattern is unknown.
type StopDTO struct {
	ID          uuid.UUID                           `gorm:"type:uuid;primaryKey"`
	RouteID     uuid.UUID                           `gorm:"type:uuid;not null;index:idx_stops_route_order,priority:1"`
	Route       routerepo.RouteDTO                  `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	Label       string                              `gorm:"type:varchar(255);not null"`
	Address     string                              `gorm:"type:varchar(255);not null"`
	Note        string                              `gorm:"type:text"`
	Reference   string                              `gorm:"type:varchar(255)"`
	Tag         string                              `gorm:"type:varchar(64)"`
	Copies      int                                 `gorm:"not null;default:1"`
	Lat         *float64                            `gorm:"type:double precision"`
	Lng         *float64                            `gorm:"type:double precision"`
	Schedule    *datatypes.JSONType[scheduleJSON]   `gorm:"type:jsonb"`
	ActiveFrom  *datatypes.Date                     `gorm:"type:date"`
	ActiveUntil *datatypes.Date                     `gorm:"type:date"`
	OrderIndex  int                                 `gorm:"not null;default:0;index:idx_stops_route_order,priority:2"`
	Suspensions datatypes.JSONSlice[suspensionJSON] `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time                           `gorm:"not null"`
	UpdatedAt   time.Time                           `gorm:"not null"`
}

func (StopDTO) TableName() string {
	return "stops"
}

type scheduleJSON struct {
	Days                 map[string]bool `json:"days"`
	Holidays             bool            `json:"holidays"`
	NeverOnHolidays      bool            `json:"neverOnHolidays"`
	CarryWeekendToMonday bool            `json:"carryWeekendToMonday"`
}

type suspensionJSON struct {
	From  kernel.Date `json:"from"`
	Until kernel.Date `json:"until"`
}

func fromDomain(s *stop.Stop) StopDTO {
	dto := StopDTO{
		ID:          s.ID().Bytes(),
		RouteID:     s.RouteID().Bytes(),
		Label:       s.Label(),
		Address:     s.Address(),
		Note:        s.Note(),
		Reference:   s.Reference(),
		Tag:         s.Tag(),
		Copies:      s.Copies(),
		OrderIndex:  s.OrderIndex(),
		Suspensions: suspensionsToJSON(s.Suspensions()),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}

	if p := s.GeoPoint(); p != nil {
		lat, lng := p.Lat(), p.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}

	if sched := s.Schedule(); sched != nil {
		doc := scheduleJSON{
			Days:                 make(map[string]bool, 7),
			Holidays:             sched.Holidays(),
			NeverOnHolidays:      sched.NeverOnHolidays(),
			CarryWeekendToMonday: sched.CarryWeekendToMonday(),
		}
		for w, on := range sched.Days() {
			doc.Days[w.String()] = on
		}
		j := datatypes.NewJSONType(doc)
		dto.Schedule = &j
	}

	activity := s.Activity()
	dto.ActiveFrom = dateToColumn(activity.ActiveFrom())
	dto.ActiveUntil = dateToColumn(activity.ActiveUntil())

	return dto
}

func suspensionsToJSON(suspensions []stop.Suspension) datatypes.JSONSlice[suspensionJSON] {
	out := make([]suspensionJSON, 0, len(suspensions))
	for _, s := range suspensions {
		out = append(out, suspensionJSON{From: s.From(), Until: s.Until()})
	}
	return datatypes.NewJSONSlice(out)
}

func toDomain(dto StopDTO) (*stop.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	details := stop.Details{
		Note:      dto.Note,
		Reference: dto.Reference,
		Tag:       dto.Tag,
		Copies:    dto.Copies,
	}

	var errList []error

	if dto.Lat != nil && dto.Lng != nil {
		p, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			errList = append(errList, err)
		}
		details.GeoPoint = &p
	}

	if dto.Schedule != nil {
		sched, err := scheduleFromJSON(dto.Schedule.Data())
		if err != nil {
			errList = append(errList, err)
		}
		details.Schedule = &sched
	}

	activity, err := stop.NewActivityWindow(dateFromColumn(dto.ActiveFrom), dateFromColumn(dto.ActiveUntil))
	if err != nil {
		errList = append(errList, err)
	}
	details.Activity = activity

	suspensions := make([]stop.Suspension, 0, len(dto.Suspensions))
	for _, doc := range dto.Suspensions {
		s, err := stop.NewSuspension(doc.From, doc.Until)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		suspensions = append(suspensions, s)
	}

	if err := errors.Join(errList...); err != nil {
		return nil, fmt.Errorf("stop %s: %w", id, err)
	}

	return stop.RestoreStop(
		id, routeID,
		dto.Label, dto.Address,
		details,
		dto.OrderIndex,
		suspensions,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func scheduleFromJSON(doc scheduleJSON) (stop.WeeklySchedule, error) {
	days := make(map[stop.Weekday]bool, len(doc.Days))
	for name, on := range doc.Days {
		w, err := stop.ParseWeekday(name)
		if err != nil {
			return stop.WeeklySchedule{}, err
		}
		days[w] = on
	}
	return stop.NewWeeklySchedule(days, stop.HolidayPolicy{
		Holidays:             doc.Holidays,
		NeverOnHolidays:      doc.NeverOnHolidays,
		CarryWeekendToMonday: doc.CarryWeekendToMonday,
	})
}

func dateToColumn(d *kernel.Date) *datatypes.Date {
	if d == nil {
		return nil
	}
	v := datatypes.Date(d.Time(time.UTC))
	return &v
}

func dateFromColumn(v *datatypes.Date) *kernel.Date {
	if v == nil {
		return nil
	}
	d := kernel.DateOf(time.Time(*v), time.UTC)
	return &d
}
