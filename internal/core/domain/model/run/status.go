package run

import (
	"fmt"

	"paperround/internal/pkg/errs"
)

// Status is the lifecycle state of a run.
//
// State transitions:
//
//	NotStarted ──> Active ──> Finished
//	     ^            │
//	     └────────────┘
//	        (reset)
//
// A run whose eligible list is empty goes straight from NotStarted to
// Finished.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// NotStarted means there is no session for the route: no cursor is
	// persisted and nothing is in memory.
	NotStarted

	// Active means the operator is walking the eligible list; the cursor is
	// in [0, N).
	Active

	// Finished means the cursor reached N and the summary has been recorded.
	Finished
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		NotStarted: "not_started",
		Active:     "active",
		Finished:   "finished",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s == Unknown || s > Finished || s < Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Start moves NotStarted to Active.
func (s Status) Start() (Status, error) {
	if s != NotStarted {
		return s, errs.NewPreconditionFailedError("start", fmt.Sprintf("run is %s", s))
	}
	return Active, nil
}

// Finish moves Active to Finished.
func (s Status) Finish() (Status, error) {
	if s != Active {
		return s, errs.NewPreconditionFailedError("finish", fmt.Sprintf("run is %s", s))
	}
	return Finished, nil
}

// RequireActive returns a PreconditionFailedError naming action unless the
// run is Active.
func (s Status) RequireActive(action string) error {
	if s != Active {
		return errs.NewPreconditionFailedError(action, fmt.Sprintf("run is %s", s))
	}
	return nil
}
