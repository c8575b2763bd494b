// Package route models the read-only route record the run needs: its owner
// and the name shown on summaries.
package route

import (
	"errors"
	"strings"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
)

// BaseOwner is the owner id of shared base templates.
const BaseOwner = "__BASE__"

var ErrRouteIsNotConstructed = errors.New("Route must be created via RestoreRoute constructor")

// Route is an ordered collection of stops owned by an account, or a shared
// base template when ownerID is BaseOwner. Routes are managed elsewhere;
// this type only carries what a run needs.
type Route struct {
	id          kernel.UUID
	ownerID     string
	baseName    string
	displayName string

	isConstructed bool
}

// RestoreRoute rebuilds a route from storage. A blank display name falls
// back to the base name.
func RestoreRoute(id kernel.UUID, ownerID, baseName, displayName string) (*Route, error) {
	r := &Route{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setOwnerID(ownerID),
		r.setNames(baseName, displayName),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

func (r *Route) ID() kernel.UUID {
	return r.id
}

func (r *Route) OwnerID() string {
	return r.ownerID
}

func (r *Route) BaseName() string {
	return r.baseName
}

func (r *Route) DisplayName() string {
	return r.displayName
}

// IsBase reports whether the route is a shared template.
func (r *Route) IsBase() bool {
	return r.ownerID == BaseOwner
}

// IsVisibleTo reports whether accountID may run the route: its owner, or
// anybody for a base template.
func (r *Route) IsVisibleTo(accountID string) bool {
	return r.IsBase() || r.ownerID == accountID
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setOwnerID(ownerID string) error {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return errs.NewValueIsRequiredError("ownerId")
	}
	r.ownerID = ownerID
	return nil
}

func (r *Route) setNames(baseName, displayName string) error {
	baseName = strings.TrimSpace(baseName)
	displayName = strings.TrimSpace(displayName)
	if baseName == "" && displayName == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if displayName == "" {
		displayName = baseName
	}
	if baseName == "" {
		baseName = displayName
	}
	r.baseName = baseName
	r.displayName = displayName
	return nil
}
