package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", Location("").String())
	assert.Equal(t, "America/Sao_Paulo", Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestDates(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	d, err := ParseDate("2026-10-19", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2026-10-19", FormatDate(d))

	_, err = ParseDate("19/10/2026", loc)
	assert.Error(t, err)

	now := time.Date(2026, 10, 19, 23, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), StartOfDay(now))
}
