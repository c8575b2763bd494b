package stop

import (
	"errors"
)

// HolidayPolicy holds the three schedule flags that are not tied to a
// weekday.
//
// NeverOnHolidays and Holidays may both be set; NeverOnHolidays wins on a
// holiday. CarryWeekendToMonday asks for a missed weekend delivery to be
// made on the following Monday.
type HolidayPolicy struct {
	Holidays             bool
	NeverOnHolidays      bool
	CarryWeekendToMonday bool
}

// WeeklySchedule is the recurring delivery pattern of a stop: one flag per
// weekday plus the holiday policy.
//
// A Stop without a schedule has a nil *WeeklySchedule and is delivered
// every day.
//
// Example:
//
//	sched, err := stop.NewWeeklySchedule(
//	    map[stop.Weekday]bool{stop.Monday: true, stop.Saturday: true},
//	    stop.HolidayPolicy{NeverOnHolidays: true},
//	)
type WeeklySchedule struct {
	days   [7]bool
	policy HolidayPolicy
}

// NewWeeklySchedule builds a schedule from a weekday map. Weekdays missing
// from the map are false. Keys outside Sunday..Saturday are rejected.
func NewWeeklySchedule(days map[Weekday]bool, policy HolidayPolicy) (WeeklySchedule, error) {
	var s WeeklySchedule
	var errList []error

	for w, on := range days {
		if err := w.Validate(); err != nil {
			errList = append(errList, err)
			continue
		}
		s.days[w] = on
	}
	if err := errors.Join(errList...); err != nil {
		return WeeklySchedule{}, err
	}

	s.policy = policy
	return s, nil
}

// DeliversOn reports the weekday flag.
func (s WeeklySchedule) DeliversOn(w Weekday) bool {
	if w.Validate() != nil {
		return false
	}
	return s.days[w]
}

// Days returns a copy of the weekday flags keyed by weekday.
func (s WeeklySchedule) Days() map[Weekday]bool {
	out := make(map[Weekday]bool, len(s.days))
	for _, w := range Weekdays() {
		out[w] = s.days[w]
	}
	return out
}

func (s WeeklySchedule) Policy() HolidayPolicy {
	return s.policy
}

func (s WeeklySchedule) Holidays() bool {
	return s.policy.Holidays
}

func (s WeeklySchedule) NeverOnHolidays() bool {
	return s.policy.NeverOnHolidays
}

func (s WeeklySchedule) CarryWeekendToMonday() bool {
	return s.policy.CarryWeekendToMonday
}
