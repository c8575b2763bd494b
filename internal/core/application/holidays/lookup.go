// Package holidays caches the holiday calendar for the process lifetime.
package holidays

import (
	"context"
	"sync"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/services"
	"paperround/internal/core/ports"
	"paperround/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

// Lookup is a HolidaySet loaded once from a HolidaySource and kept until
// Invalidate is called. Concurrent first loads share a single call to the
// source.
type Lookup struct {
	source ports.HolidaySource
	group  singleflight.Group

	mu     sync.RWMutex
	dates  map[kernel.Date]struct{}
	loaded bool
}

func NewLookup(source ports.HolidaySource) *Lookup {
	return &Lookup{source: source}
}

// Calendar returns a HolidayFunc over the cached set, loading it first if
// needed. The returned function keeps answering from the set it was built
// with, even after an Invalidate.
func (l *Lookup) Calendar(ctx context.Context) (services.HolidayFunc, error) {
	dates, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return func(d kernel.Date) bool {
		_, ok := dates[d]
		return ok
	}, nil
}

// Invalidate drops the cached set; the next Calendar call reloads it.
func (l *Lookup) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dates = nil
	l.loaded = false
}

// Refresh invalidates and reloads at once. It returns the number of
// holidays now cached.
func (l *Lookup) Refresh(ctx context.Context) (int, error) {
	l.Invalidate()
	dates, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(dates), nil
}

func (l *Lookup) cached() (map[kernel.Date]struct{}, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dates, l.loaded
}

func (l *Lookup) load(ctx context.Context) (map[kernel.Date]struct{}, error) {
	if dates, ok := l.cached(); ok {
		return dates, nil
	}

	v, err, _ := l.group.Do("holidays", func() (any, error) {
		if dates, ok := l.cached(); ok {
			return dates, nil
		}

		list, err := l.source.ListHolidayDates(ctx)
		if err != nil {
			return nil, errs.NewPersistenceError("list holidays", err)
		}

		dates := make(map[kernel.Date]struct{}, len(list))
		for _, d := range list {
			dates[d] = struct{}{}
		}

		l.mu.Lock()
		l.dates = dates
		l.loaded = true
		l.mu.Unlock()
		return dates, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[kernel.Date]struct{}), nil
}
