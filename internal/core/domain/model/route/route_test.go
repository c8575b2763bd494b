package route_test

import (
	"testing"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/route"
	"paperround/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreRoute(t *testing.T) {
	t.Run("display name falls back to base name", func(t *testing.T) {
		r, err := route.RestoreRoute(kernel.NewUUID(), "acc-1", "Gamonal", " ")

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, "Gamonal", r.DisplayName())
		assert.False(t, r.IsBase())
	})

	t.Run("base routes are visible to every account", func(t *testing.T) {
		r, err := route.RestoreRoute(kernel.NewUUID(), route.BaseOwner, "Centro", "Centro (base)")

		require.NoError(t, err)
		assert.True(t, r.IsBase())
		assert.True(t, r.IsVisibleTo("anyone"))
	})

	t.Run("owned routes are private", func(t *testing.T) {
		r, _ := route.RestoreRoute(kernel.NewUUID(), "acc-1", "Gamonal", "Mi Gamonal")

		assert.True(t, r.IsVisibleTo("acc-1"))
		assert.False(t, r.IsVisibleTo("acc-2"))
	})

	t.Run("requires owner and a name", func(t *testing.T) {
		r, err := route.RestoreRoute(kernel.NewUUID(), "", "", "")

		assert.Nil(t, r)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "ownerId")
		assert.Contains(t, err.Error(), "name")
	})
}
