package kernel_test

import (
	"sort"
	"testing"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stopUUID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.NotEqual(t, uuid.Nil.String(), id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("accepts the usual textual forms", func(t *testing.T) {
		for _, input := range []string{
			stopUUID,
			"{" + stopUUID + "}",
			"urn:uuid:" + stopUUID,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, stopUUID, id.String())
		}
	})

	t.Run("rejects malformed input as invalid value", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", stopUUID + "-extra"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("rejects the nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round trips through Bytes", func(t *testing.T) {
		original, _ := kernel.UUIDFromString(stopUUID)
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})

		assert.ErrorContains(t, err, "invalid UUID format")
	})

	t.Run("rejects nil bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
}

func TestUUID_Less(t *testing.T) {
	a, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000001")
	b, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000002")
	c, _ := kernel.UUIDFromString("10000000-0000-0000-0000-000000000000")

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))

	ids := []kernel.UUID{c, a, b}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	assert.Equal(t, []kernel.UUID{a, b, c}, ids)
}

func TestUUID_BytesDoesNotLeakState(t *testing.T) {
	original := kernel.NewUUID()
	before := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, before, original.String())
}
