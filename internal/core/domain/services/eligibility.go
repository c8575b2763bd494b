package services

import (
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
)

// HolidayFunc reports whether a calendar date is a holiday.
type HolidayFunc func(kernel.Date) bool

// NoHolidays is a HolidayFunc for calendars without holidays.
func NoHolidays(kernel.Date) bool { return false }

// WeekendLedger answers whether a stop actually got its delivery on a past
// weekend day. It feeds the carry-weekend rule.
type WeekendLedger interface {
	WasDelivered(stopID kernel.UUID, date kernel.Date) bool
}

// WeekendLedgerFunc adapts a function to WeekendLedger.
type WeekendLedgerFunc func(stopID kernel.UUID, date kernel.Date) bool

func (f WeekendLedgerFunc) WasDelivered(stopID kernel.UUID, date kernel.Date) bool {
	return f(stopID, date)
}

// NothingDelivered is the default ledger: no weekend delivery is on record.
var NothingDelivered WeekendLedger = WeekendLedgerFunc(func(kernel.UUID, kernel.Date) bool { return false })

// CarryWeekendRule makes a missed weekend delivery up on Monday.
//
// The rule is off unless enabled. When on, a stop whose schedule asks for
// the carry, evaluated on a Monday the weekday table rejects, is eligible
// if it was due on the preceding Saturday or Sunday and the ledger shows no
// delivery that day. It never overrides a suspension or NeverOnHolidays.
type CarryWeekendRule struct {
	enabled bool
}

// NewCarryWeekendRule returns the rule, switched on or off.
func NewCarryWeekendRule(enabled bool) CarryWeekendRule {
	return CarryWeekendRule{enabled: enabled}
}

func (r CarryWeekendRule) Enabled() bool {
	return r.enabled
}

// EligibilityEngine decides whether a stop gets a delivery on a date.
//
// Rules, in strict precedence order:
//  1. a suspension containing the date: not eligible
//  2. a holiday with NeverOnHolidays set: not eligible
//  3. a holiday with Holidays set: eligible
//  4. otherwise the weekday flag for the date, Sunday=0
//
// then, only when step 4 said no, the CarryWeekendRule. A stop without a
// schedule is eligible every day it is not suspended.
//
// The engine is pure: it holds no state besides its configuration and
// performs no I/O.
//
// Example:
//
//	engine := services.NewEligibilityEngine(services.NewCarryWeekendRule(cfg.CarryWeekendToMonday))
//	if engine.IsEligible(s, today, lookup.IsHoliday) {
//	    // deliver
//	}
type EligibilityEngine struct {
	carry  CarryWeekendRule
	ledger WeekendLedger
}

// NewEligibilityEngine creates an engine with the given carry rule and the
// NothingDelivered ledger.
func NewEligibilityEngine(carry CarryWeekendRule) EligibilityEngine {
	return EligibilityEngine{carry: carry, ledger: NothingDelivered}
}

// WithWeekendLedger returns a copy of the engine reading weekend deliveries
// from ledger.
func (e EligibilityEngine) WithWeekendLedger(ledger WeekendLedger) EligibilityEngine {
	if ledger == nil {
		ledger = NothingDelivered
	}
	e.ledger = ledger
	return e
}

// CarryWeekend exposes the configured carry rule.
func (e EligibilityEngine) CarryWeekend() CarryWeekendRule {
	return e.carry
}

// IsEligible applies the rules above to one stop and one date.
func (e EligibilityEngine) IsEligible(s *stop.Stop, date kernel.Date, isHoliday HolidayFunc) bool {
	if isHoliday == nil {
		isHoliday = NoHolidays
	}

	eligible, blocked := e.baseEligibility(s, date, isHoliday)
	if eligible || blocked {
		return eligible
	}
	return e.carriedFromWeekend(s, date, isHoliday)
}

// baseEligibility runs steps 1-4. blocked is true when a suspension or
// NeverOnHolidays decided the answer, so nothing may override it.
func (e EligibilityEngine) baseEligibility(s *stop.Stop, date kernel.Date, isHoliday HolidayFunc) (eligible, blocked bool) {
	if s.IsSuspendedOn(date) {
		return false, true
	}

	sched := s.Schedule()
	if sched == nil {
		return true, false
	}

	if isHoliday(date) {
		if sched.NeverOnHolidays() {
			return false, true
		}
		if sched.Holidays() {
			return true, false
		}
	}

	return sched.DeliversOn(stop.WeekdayOf(date)), false
}

func (e EligibilityEngine) carriedFromWeekend(s *stop.Stop, date kernel.Date, isHoliday HolidayFunc) bool {
	if !e.carry.enabled || stop.WeekdayOf(date) != stop.Monday {
		return false
	}
	sched := s.Schedule()
	if sched == nil || !sched.CarryWeekendToMonday() {
		return false
	}

	for _, back := range []int{-2, -1} {
		day := date.AddDays(back)
		if due, _ := e.baseEligibility(s, day, isHoliday); due && !e.ledger.WasDelivered(s.ID(), day) {
			return true
		}
	}
	return false
}

// IsActive reports whether d falls inside the stop's activity window.
func (e EligibilityEngine) IsActive(s *stop.Stop, date kernel.Date) bool {
	return s.Activity().IsActiveOn(date)
}

// EligibleStops orders stops by rank and keeps the ones that are active and
// eligible on date.
func (e EligibilityEngine) EligibleStops(stops []*stop.Stop, date kernel.Date, isHoliday HolidayFunc) []*stop.Stop {
	out := make([]*stop.Stop, 0, len(stops))
	for _, s := range stop.Ordered(stops) {
		if e.IsActive(s, date) && e.IsEligible(s, date, isHoliday) {
			out = append(out, s)
		}
	}
	return out
}
