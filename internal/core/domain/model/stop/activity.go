package stop

import (
	"fmt"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
)

// ActivityWindow bounds the life of a stop: the customer signs up on
// activeFrom and cancels on activeUntil. Both ends are optional.
//
// activeFrom is the first active day; activeUntil is the first inactive day.
type ActivityWindow struct {
	activeFrom  *kernel.Date
	activeUntil *kernel.Date
}

// NewActivityWindow rejects a window whose end is not after its start.
func NewActivityWindow(activeFrom, activeUntil *kernel.Date) (ActivityWindow, error) {
	if activeFrom != nil && activeUntil != nil && !activeUntil.After(*activeFrom) {
		return ActivityWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"activeUntil",
			fmt.Errorf("%s is not after %s", activeUntil, activeFrom),
		)
	}

	w := ActivityWindow{}
	if activeFrom != nil {
		from := *activeFrom
		w.activeFrom = &from
	}
	if activeUntil != nil {
		until := *activeUntil
		w.activeUntil = &until
	}
	return w, nil
}

// IsActiveOn reports whether the stop takes deliveries on d at all.
func (w ActivityWindow) IsActiveOn(d kernel.Date) bool {
	if w.activeFrom != nil && d.Before(*w.activeFrom) {
		return false
	}
	if w.activeUntil != nil && !d.Before(*w.activeUntil) {
		return false
	}
	return true
}

func (w ActivityWindow) ActiveFrom() *kernel.Date {
	if w.activeFrom == nil {
		return nil
	}
	d := *w.activeFrom
	return &d
}

func (w ActivityWindow) ActiveUntil() *kernel.Date {
	if w.activeUntil == nil {
		return nil
	}
	d := *w.activeUntil
	return &d
}
