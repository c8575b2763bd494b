package queries

import (
	"errors"
	"strings"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"
	"paperround/internal/pkg/guard"
)

// MaxSearchResults caps a stop search.
const MaxSearchResults = 25

var ErrSearchRunStopsQueryIsNotConstructed = errors.New(
	"SearchRunStopsQuery must be created via NewSearchRunStopsQuery constructor",
)

// SearchRunStopsQuery finds stops of today's run by label or address,
// ignoring case and accents. Results keep run order.
type SearchRunStopsQuery struct {
	routeScope
	text string

	guard guard.ConstructorGuard
}

func NewSearchRunStopsQuery(accountID string, routeID kernel.UUID, text string) (SearchRunStopsQuery, error) {
	scope, err := newRouteScope(accountID, routeID)
	text = strings.TrimSpace(text)
	var textErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("q")
	}
	if err = errors.Join(err, textErr); err != nil {
		return SearchRunStopsQuery{}, err
	}
	return SearchRunStopsQuery{routeScope: scope, text: text, guard: guard.NewConstructorGuard()}, nil
}

func (q SearchRunStopsQuery) Validate() error {
	return q.guard.Validate(ErrSearchRunStopsQueryIsNotConstructed)
}

func (q SearchRunStopsQuery) Text() string {
	return q.text
}
