package kernel_test

import (
	"encoding/json"
	"testing"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) kernel.Date {
	t.Helper()
	d, err := kernel.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNewDate(t *testing.T) {
	t.Run("valid calendar day", func(t *testing.T) {
		d, err := kernel.NewDate(2025, time.June, 9)

		require.NoError(t, err)
		assert.Equal(t, "2025-06-09", d.String())
		assert.NoError(t, d.Validate())
	})

	t.Run("rejects overflowing days", func(t *testing.T) {
		_, err := kernel.NewDate(2025, time.June, 31)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "2025-06-31 is not a calendar date")
	})

	t.Run("rejects february 29 outside leap years", func(t *testing.T) {
		_, err := kernel.NewDate(2025, time.February, 29)
		assert.Error(t, err)

		_, err = kernel.NewDate(2024, time.February, 29)
		assert.NoError(t, err)
	})
}

func TestParseDate(t *testing.T) {
	d := mustDate(t, "2025-06-16")

	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 16, d.Day())

	for _, input := range []string{"", "16/06/2025", "2025-13-01", "2025-06-16T10:00:00Z"} {
		_, err := kernel.ParseDate(input)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid, input)
	}
}

func TestDateOf_UsesLocationCalendar(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	// 23:30 UTC on the 8th is already the 9th in Madrid (UTC+2 in summer).
	instant := time.Date(2025, time.June, 8, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-06-08", kernel.DateOf(instant, time.UTC).String())
	assert.Equal(t, "2025-06-09", kernel.DateOf(instant, madrid).String())
	assert.Equal(t, "2025-06-08", kernel.DateOf(instant, nil).String())
}

func TestDate_Weekday(t *testing.T) {
	assert.Equal(t, time.Monday, mustDate(t, "2025-06-09").Weekday())
	assert.Equal(t, time.Tuesday, mustDate(t, "2025-06-10").Weekday())
	assert.Equal(t, time.Sunday, mustDate(t, "2025-06-15").Weekday())
}

func TestDate_AddDaysAndCompare(t *testing.T) {
	d := mustDate(t, "2025-02-28")

	assert.Equal(t, "2025-03-01", d.AddDays(1).String())
	assert.Equal(t, "2025-02-26", d.AddDays(-2).String())
	assert.Equal(t, "2026-01-01", mustDate(t, "2025-12-31").AddDays(1).String())

	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.Equal(t, 0, d.Compare(mustDate(t, "2025-02-28")))
	assert.True(t, d.Equal(mustDate(t, "2025-02-28")))
	assert.Equal(t, -1, mustDate(t, "2024-12-31").Compare(d))
}

func TestDate_ZeroValue(t *testing.T) {
	var d kernel.Date

	assert.True(t, d.IsZero())
	assert.Equal(t, kernel.ErrDateIsNotConstructed, d.Validate())
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date kernel.Date `json:"date"`
	}

	raw, err := json.Marshal(payload{Date: mustDate(t, "2025-06-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-06-01"}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-06-10"}`), &decoded))
	assert.Equal(t, "2025-06-10", decoded.Date.String())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"10-06-2025"}`), &decoded))
}
