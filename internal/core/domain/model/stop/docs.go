// Package stop models a delivery address and the rules data attached to it:
// the weekly schedule, the holiday policy, suspensions and the activity
// window.
//
// Weekday uses Sunday=0 ... Saturday=6. All dates are kernel.Date values;
// nothing in this package looks at a time of day.
package stop
