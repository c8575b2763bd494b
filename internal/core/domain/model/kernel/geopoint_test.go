package kernel_test

import (
	"testing"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(40.6565, -4.6818)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 40.6565, p.Lat(), 1e-9)
		assert.InDelta(t, -4.6818, p.Lng(), 1e-9)
		assert.Equal(t, "40.656500,-4.681800", p.String())
	})

	t.Run("accepts the bounds", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(-90, 180)
		assert.NoError(t, err)
	})

	t.Run("reports both out of range coordinates", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, -181)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "lat")
		assert.Contains(t, err.Error(), "lng")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p kernel.GeoPoint

		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, p.Validate())
	})
}
