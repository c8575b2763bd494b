// Package services provides the domain services of the run engine: rules
// that work across many stops rather than inside one.
//
// The package includes:
//   - EligibilityEngine: decides whether a stop gets a delivery on a date,
//     with the optional CarryWeekendRule
//   - OrderingService: keeps a route's stops in a total order and reports
//     the index range a change touches
//
// Both services are pure: callers load stops, call the service, and persist
// the result.
package services
