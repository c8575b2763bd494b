package queries_test

import (
	"testing"
	"time"

	"paperround/internal/core/application/usecases/queries"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/summary"
	"paperround/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetSummaryQueryHandler(t *testing.T) {
	s, err := summary.NewSummary(summary.Params{
		AccountID:  accountID,
		RouteID:    kernel.NewUUID(),
		RouteName:  "Gamonal",
		Date:       monday(t),
		StartedAt:  now,
		FinishedAt: now.Add(75 * time.Minute),
		Delivered:  []string{"A", "B"},
		Skipped:    []string{"C"},
	})
	require.NoError(t, err)

	t.Run("own summary", func(t *testing.T) {
		repo := new(MockSummaryRepository)
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil)

		query, err := queries.NewGetSummaryQuery(accountID, s.ID())
		require.NoError(t, err)
		view, err := queries.NewGetSummaryQueryHandler(repo).Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, "Gamonal", view.RouteName)
		assert.Equal(t, 3, view.Total())
		assert.Equal(t, 75, view.DurationMinutes())
	})

	t.Run("other account is not found", func(t *testing.T) {
		repo := new(MockSummaryRepository)
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil)

		query, err := queries.NewGetSummaryQuery("acc-2", s.ID())
		require.NoError(t, err)
		_, err = queries.NewGetSummaryQueryHandler(repo).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("missing summary", func(t *testing.T) {
		repo := new(MockSummaryRepository)
		id := kernel.NewUUID()
		repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("summaryId", id.String()))

		query, err := queries.NewGetSummaryQuery(accountID, id)
		require.NoError(t, err)
		_, err = queries.NewGetSummaryQueryHandler(repo).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestNewListSummariesQuery(t *testing.T) {
	q, err := queries.NewListSummariesQuery(" acc-1 ", " 2025-06 ")

	require.NoError(t, err)
	assert.Equal(t, accountID, q.AccountID())
	assert.Equal(t, "2025-06", q.Filter())

	_, err = queries.NewListSummariesQuery("", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
