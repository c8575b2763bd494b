// Package guard marks values as built through their constructors so zero
// values of domain objects and commands can be told apart from real ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil error for an unconstructed value.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs that must only be created by their
// constructor. Its zero value fails Validate.
//
// Example:
//
//	type Suspension struct {
//	    from, until kernel.Date
//	    guard       guard.ConstructorGuard
//	}
//
//	func (s Suspension) Validate() error {
//	    return s.guard.Validate(ErrSuspensionIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
