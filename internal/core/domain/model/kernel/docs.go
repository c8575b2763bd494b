// Package kernel provides the value objects shared by the stop, run and
// summary models.
//
// The package includes:
//   - UUID: identifiers for routes, stops and summaries
//   - Date: a calendar day without time-of-day, the only date type the
//     eligibility rules ever see
//   - GeoPoint: an optional coordinate carried by a stop
//
// Values are immutable; zero values fail Validate.
package kernel
