package commands_test

import (
	"errors"
	"testing"

	"paperround/internal/core/application/usecases/commands"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/stop"
	"paperround/internal/core/domain/services"
	"paperround/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAddStopCommand(t *testing.T) {
	t.Run("generates a stop id", func(t *testing.T) {
		cmd, err := commands.NewAddStopCommand(accountID, kernel.NewUUID(), " Bar ", " Plaza 1 ", stop.Details{Copies: 2})

		require.NoError(t, err)
		require.NoError(t, cmd.StopID().Validate())
		assert.Equal(t, "Bar", cmd.Label())
		assert.Equal(t, "Plaza 1", cmd.Address())
		assert.Equal(t, 2, cmd.Details().Copies)
	})

	t.Run("requires label and address", func(t *testing.T) {
		_, err := commands.NewAddStopCommand(accountID, kernel.NewUUID(), "", " ", stop.Details{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "label")
		assert.Contains(t, err.Error(), "address")
	})
}

func TestAddStopCommandHandler_Handle(t *testing.T) {
	t.Run("appends at the end in one transaction", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		factory, uow := newStopUoW(repo)
		current := makeStops(t, routeID, 3)

		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil).Once(),
			repo.On("ListOrdered", mock.Anything, routeID).Return(current, nil).Once(),
			repo.On("Add", mock.Anything, mock.MatchedBy(func(s *stop.Stop) bool {
				return s.OrderIndex() == 3 && s.Label() == "Kiosko"
			})).Return(nil).Once(),
			uow.On("Commit", mock.Anything).Return(nil).Once(),
			uow.On("Rollback", mock.Anything).Return(nil).Once(),
		)

		handler := commands.NewAddStopCommandHandler(factory, routes, services.NewOrderingService(), fixedClock{now: now})
		cmd, err := commands.NewAddStopCommand(accountID, routeID, "Kiosko", "Plaza 1", stop.Details{})
		require.NoError(t, err)

		added, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, 3, added.OrderIndex())
		assert.True(t, cmd.StopID().IsEqual(added.ID()))
		assert.Equal(t, now, added.CreatedAt())
		repo.AssertNotCalled(t, "UpdateOrderIndex", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("failed insert does not commit", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		factory, uow := newStopUoW(repo)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		repo.On("ListOrdered", mock.Anything, routeID).Return([]*stop.Stop{}, nil).Once()
		repo.On("Add", mock.Anything, mock.Anything).Return(errs.NewObjectNotFoundError("routeId", routeID)).Once()

		handler := commands.NewAddStopCommandHandler(factory, routes, services.NewOrderingService(), fixedClock{now: now})
		cmd, err := commands.NewAddStopCommand(accountID, routeID, "Kiosko", "Plaza 1", stop.Details{})
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("invalid details never open a transaction", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		factory := new(MockStopUoWFactory)

		handler := commands.NewAddStopCommandHandler(factory, routes, services.NewOrderingService(), fixedClock{now: now})
		cmd, err := commands.NewAddStopCommand(accountID, routeID, "Kiosko", "Plaza 1", stop.Details{Copies: 5000})
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestSwapStopCommandHandler_Handle(t *testing.T) {
	t.Run("rewrites the two swapped stops", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		factory, uow := newStopUoW(repo)
		current := makeStops(t, routeID, 4)

		uow.On("Begin", mock.Anything).Return(nil).Once()
		repo.On("ListOrdered", mock.Anything, routeID).Return(current, nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[2].ID(), 1).Return(nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[1].ID(), 2).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		handler := commands.NewSwapStopCommandHandler(factory, routes, services.NewOrderingService())
		cmd, err := commands.NewSwapStopCommand(accountID, routeID, current[2].ID(), services.Up)
		require.NoError(t, err)

		ordered, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, ordered, 4)
		assert.True(t, ordered[1].IsEqual(current[2]))
		assert.True(t, ordered[2].IsEqual(current[1]))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("first stop cannot move up", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		factory, uow := newStopUoW(repo)
		current := makeStops(t, routeID, 2)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		repo.On("ListOrdered", mock.Anything, routeID).Return(current, nil).Once()

		handler := commands.NewSwapStopCommandHandler(factory, routes, services.NewOrderingService())
		cmd, err := commands.NewSwapStopCommand(accountID, routeID, current[0].ID(), services.Up)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		repo.AssertNotCalled(t, "UpdateOrderIndex", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("rejects an unknown direction", func(t *testing.T) {
		_, err := commands.NewSwapStopCommand(accountID, kernel.NewUUID(), kernel.NewUUID(), services.Direction(9))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoveStopCommandHandler_Handle(t *testing.T) {
	t.Run("shifts the stops in between", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		factory, uow := newStopUoW(repo)
		current := makeStops(t, routeID, 5)

		uow.On("Begin", mock.Anything).Return(nil).Once()
		repo.On("ListOrdered", mock.Anything, routeID).Return(current, nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[3].ID(), 1).Return(nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[1].ID(), 2).Return(nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[2].ID(), 3).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		handler := commands.NewMoveStopCommandHandler(factory, routes, services.NewOrderingService())
		cmd, err := commands.NewMoveStopCommand(accountID, routeID, current[3].ID(), 2)
		require.NoError(t, err)

		ordered, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, ordered[1].IsEqual(current[3]))
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "UpdateOrderIndex", mock.Anything, routeID, current[0].ID(), mock.Anything)
		repo.AssertNotCalled(t, "UpdateOrderIndex", mock.Anything, routeID, current[4].ID(), mock.Anything)
	})

	t.Run("same position writes nothing", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		factory, uow := newStopUoW(repo)
		current := makeStops(t, routeID, 3)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		repo.On("ListOrdered", mock.Anything, routeID).Return(current, nil).Once()

		handler := commands.NewMoveStopCommandHandler(factory, routes, services.NewOrderingService())
		cmd, err := commands.NewMoveStopCommand(accountID, routeID, current[1].ID(), 2)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "UpdateOrderIndex", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects positions below one", func(t *testing.T) {
		_, err := commands.NewMoveStopCommand(accountID, kernel.NewUUID(), kernel.NewUUID(), 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestReorderStopsCommandHandler_Handle(t *testing.T) {
	t.Run("writes every moved stop", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		current := makeStops(t, routeID, 3)
		repo.On("ListOrdered", mock.Anything, routeID).Return(current, nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[2].ID(), 0).Return(nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[0].ID(), 1).Return(nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[1].ID(), 2).Return(nil).Once()

		handler := commands.NewReorderStopsCommandHandler(repo, routes, services.NewOrderingService(), nil)
		cmd, err := commands.NewReorderStopsCommand(accountID, routeID,
			[]kernel.UUID{current[2].ID(), current[0].ID(), current[1].ID()})
		require.NoError(t, err)

		ordered, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, ordered[0].IsEqual(current[2]))
		repo.AssertExpectations(t)
	})

	t.Run("reports every failed stop and still writes the rest", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		current := makeStops(t, routeID, 3)
		repo.On("ListOrdered", mock.Anything, routeID).Return(current, nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[2].ID(), 0).Return(errors.New("timeout")).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[1].ID(), 1).Return(nil).Once()
		repo.On("UpdateOrderIndex", mock.Anything, routeID, current[0].ID(), 2).Return(errors.New("timeout")).Once()

		handler := commands.NewReorderStopsCommandHandler(repo, routes, services.NewOrderingService(), nil)
		cmd, err := commands.NewReorderStopsCommand(accountID, routeID,
			[]kernel.UUID{current[2].ID(), current[1].ID(), current[0].ID()})
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrPersistence)
		assert.Contains(t, err.Error(), current[0].ID().String())
		assert.Contains(t, err.Error(), current[2].ID().String())
		assert.NotContains(t, err.Error(), current[1].ID().String())
		repo.AssertExpectations(t)
	})

	t.Run("rejects an order that is not a permutation", func(t *testing.T) {
		routes := new(MockRouteRepository)
		routeID := visibleRoute(t, routes)
		repo := new(MockStopRepository)
		current := makeStops(t, routeID, 3)
		repo.On("ListOrdered", mock.Anything, routeID).Return(current, nil).Once()

		handler := commands.NewReorderStopsCommandHandler(repo, routes, services.NewOrderingService(), nil)
		cmd, err := commands.NewReorderStopsCommand(accountID, routeID, []kernel.UUID{current[0].ID(), current[1].ID()})
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		repo.AssertNotCalled(t, "UpdateOrderIndex", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requires a non-empty order", func(t *testing.T) {
		_, err := commands.NewReorderStopsCommand(accountID, kernel.NewUUID(), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
