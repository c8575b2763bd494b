// Package run models a delivery run: the NotStarted/Active/Finished status,
// the Session walking a frozen list of eligible stops, and the per-stop
// Outcome recorded for each action.
package run
