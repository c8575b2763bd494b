package runs

import (
	"sync"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/run"
)

// Registry keeps the in-memory session of every route and serialises
// actions on the same route.
type Registry struct {
	mu      sync.Mutex
	entries map[kernel.UUID]*entry
}

type entry struct {
	lock    sync.Mutex
	session *run.Session
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[kernel.UUID]*entry)}
}

func (r *Registry) entry(routeID kernel.UUID) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[routeID]
	if !ok {
		e = &entry{}
		r.entries[routeID] = e
	}
	return e
}

// Lock takes the route lock and returns its release function. Session
// reads and writes for the route must happen while holding it.
func (r *Registry) Lock(routeID kernel.UUID) func() {
	e := r.entry(routeID)
	e.lock.Lock()
	return e.lock.Unlock
}

// Get returns the route's session or nil. The caller holds the route lock.
func (r *Registry) Get(routeID kernel.UUID) *run.Session {
	return r.entry(routeID).session
}

// Put replaces the route's session. The caller holds the route lock.
func (r *Registry) Put(s *run.Session) {
	r.entry(s.RouteID()).session = s
}

// Drop forgets the route's session. The caller holds the route lock.
func (r *Registry) Drop(routeID kernel.UUID) {
	r.entry(routeID).session = nil
}
