// Package errs provides the error taxonomy shared by the run engine, the
// ordering service and the adapters around them.
//
// The package includes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError:
//     validation failures, rejected before any mutation
//   - ObjectNotFoundError: an id absent from the loaded set or from storage
//   - PreconditionFailedError: an action not allowed in the current state
//     (back at cursor 0, deliver with no current stop); always a no-op
//   - PersistenceError: a storage collaborator failed; callers retry or
//     reload authoritative state
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() so errors.Is matches the sentinel
package errs
