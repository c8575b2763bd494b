package kernel

import (
	"fmt"
	"time"

	"paperround/internal/pkg/errs"
)

// DateLayout is the ISO calendar date format used on every boundary.
const DateLayout = "2006-01-02"

// ErrDateIsNotConstructed is returned when validating a zero-value Date.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError("date must be created via NewDate, ParseDate or DateOf")

// Date is a calendar day with no time-of-day and no zone. Every timestamp
// that reaches the domain is converted into a Date first, so eligibility
// never depends on the hour a request arrives.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a Date and rejects out-of-calendar values such as 31 June.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day || year < 1 {
		return Date{}, errs.NewValueIsInvalidErrorWithCause(
			"date", fmt.Errorf("%04d-%02d-%02d is not a calendar date", year, month, day))
	}
	return Date{year: year, month: month, day: day}, nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// DateOf returns the calendar day of t as observed in loc. A nil loc means UTC.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Validate returns ErrDateIsNotConstructed for the zero Date.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Date) Year() int {
	return d.year
}

func (d Date) Month() time.Month {
	return d.month
}

func (d Date) Day() int {
	return d.day
}

// Weekday returns the day of week, Sunday=0.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// AddDays moves d by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n), time.UTC)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) Equal(other Date) bool {
	return d == other
}

// String renders YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
