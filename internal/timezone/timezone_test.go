package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.True(t, IsValid("America/Los_Angeles"))
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Marte/Cratera"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", Sanitize("America/Sao_Paulo", "UTC"))
	assert.Equal(t, "UTC", Sanitize("invalida", "UTC"))
	assert.Equal(t, "UTC", Sanitize("", "UTC"))
}

func TestLocationInvalida(t *testing.T) {
	_, err := Location("Marte/Cratera")
	assert.True(t, httperr.IsBusiness(err, "invalid_time_zone"))

	_, err = Location("")
	assert.True(t, httperr.IsBusiness(err, "invalid_time_zone"))
}

func TestCivilRoundTrip(t *testing.T) {
	cv := Civil{Year: 2026, Month: time.March, Day: 9, Hour: 14, Minute: 30}

	utc, err := CivilToUTC(cv, "America/Los_Angeles")
	require.NoError(t, err)

	// 14:30 em LA (PDT, -07) = 21:30 UTC.
	assert.Equal(t, 21, utc.Hour())
	assert.Equal(t, 30, utc.Minute())

	back, err := UTCToCivil(utc, "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, cv, back)
}

func TestCivilRoundTripVirandoODia(t *testing.T) {
	// 22:00 em São Paulo (-03) = 01:00 UTC do dia seguinte.
	cv := Civil{Year: 2026, Month: time.March, Day: 9, Hour: 22}

	utc, err := CivilToUTC(cv, "America/Sao_Paulo")
	require.NoError(t, err)
	assert.Equal(t, 10, utc.Day())
	assert.Equal(t, 1, utc.Hour())

	back, err := UTCToCivil(utc, "America/Sao_Paulo")
	require.NoError(t, err)
	assert.Equal(t, cv, back)
}

func TestWeekday(t *testing.T) {
	// 2026-03-10 01:00 UTC ainda é segunda-feira em LA.
	utc := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)

	wd, err := Weekday(utc, "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)

	key, err := WeekdayKey(utc, "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, "mon", key)

	// Em UTC já é terça.
	key, err = WeekdayKey(utc, "UTC")
	require.NoError(t, err)
	assert.Equal(t, "tue", key)
}
