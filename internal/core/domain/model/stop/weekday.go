package stop

import (
	"fmt"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
)

// Weekday is a day of the week with Sunday=0 ... Saturday=6, matching the
// numbering stored with every schedule.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = map[Weekday]string{
	Sunday:    "sunday",
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
}

// Weekdays lists every weekday in storage order.
func Weekdays() []Weekday {
	return []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// WeekdayOf returns the weekday of a calendar date.
func WeekdayOf(d kernel.Date) Weekday {
	return Weekday(d.Weekday())
}

// ParseWeekday accepts the lower-case English name.
func ParseWeekday(s string) (Weekday, error) {
	for w, name := range weekdayNames {
		if name == s {
			return w, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("weekday", fmt.Errorf("%q is not a weekday", s))
}

func (w Weekday) Validate() error {
	if w < Sunday || w > Saturday {
		return errs.NewValueIsOutOfRangeError("weekday", int(w), int(Sunday), int(Saturday))
	}
	return nil
}

func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return fmt.Sprintf("weekday(%d)", int(w))
}

// TimeWeekday converts to the standard library representation.
func (w Weekday) TimeWeekday() time.Weekday {
	return time.Weekday(w)
}
