package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
)

func weekdays(t *testing.T, start, end string) schedule.WorkingSchedule {
	t.Helper()
	ws := schedule.FromConfig(schedule.Config{
		StartTime:   start,
		EndTime:     end,
		WorkingDays: []int{1, 2, 3, 4, 5},
	})
	require.True(t, ws.Configured)
	return ws
}

func TestGenerateSlots_GridAnchoredToDuration(t *testing.T) {
	ws := weekdays(t, "09:00", "17:00")

	hourly := GenerateSlots(ws, time.Monday, 60, nil)
	assert.Equal(t, []string{
		"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
	}, hourly)

	ninety := GenerateSlots(ws, time.Monday, 90, nil)
	assert.Equal(t, []string{"09:00", "10:30", "12:00", "13:30", "15:00"}, ninety)
}

func TestGenerateSlots_ExcludesOverlaps(t *testing.T) {
	ws := weekdays(t, "09:00", "17:00")
	busy := []Busy{{Date: "2026-10-19", Time: "10:00", DurationMinutes: 60}}

	slots := GenerateSlots(ws, time.Monday, 60, busy)

	assert.Contains(t, slots, "09:00")
	assert.Contains(t, slots, "11:00")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "09:30")

	// a 30-minute grid exposes the half hours around the booking
	halves := GenerateSlots(ws, time.Monday, 30, busy)
	assert.Contains(t, halves, "09:30")
	assert.NotContains(t, halves, "10:00")
	assert.NotContains(t, halves, "10:30")
	assert.Contains(t, halves, "11:00")
}

func TestGenerateSlots_FallbackDurationForOrphanedBooking(t *testing.T) {
	ws := weekdays(t, "09:00", "12:00")
	busy := []Busy{{Time: "09:00"}}

	slots := GenerateSlots(ws, time.Monday, 30, busy)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, slots)
}

func TestGenerateSlots_Break(t *testing.T) {
	ws := schedule.FromConfig(schedule.Config{
		StartTime:   "09:00",
		EndTime:     "14:00",
		WorkingDays: []int{1},
		BreakStart:  "12:00",
		BreakEnd:    "13:00",
	})

	slots := GenerateSlots(ws, time.Monday, 60, nil)

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "13:00"}, slots)
}

func TestGenerateSlots_ClosedOrUnconfigured(t *testing.T) {
	ws := weekdays(t, "09:00", "17:00")

	closed := GenerateSlots(ws, time.Sunday, 60, nil)
	assert.NotNil(t, closed)
	assert.Empty(t, closed)

	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.Empty(t, GenerateSlots(schedule.Unconfigured(), d, 60, nil))
	}
}

func TestGenerateSlots_DurationIsClamped(t *testing.T) {
	ws := weekdays(t, "09:00", "10:00")

	assert.Len(t, GenerateSlots(ws, time.Monday, 1, nil), 4)
	assert.Len(t, GenerateSlots(ws, time.Monday, 0, nil), 1)
	assert.Empty(t, GenerateSlots(ws, time.Monday, 10_000, nil))
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	ws := weekdays(t, "09:00", "17:00")
	busy := []Busy{
		{Time: "13:00", DurationMinutes: 45},
		{Time: "09:00", DurationMinutes: 30},
	}

	first := GenerateSlots(ws, time.Tuesday, 45, busy)
	second := GenerateSlots(ws, time.Tuesday, 45, busy)

	assert.Equal(t, first, second)
}

func TestFilterAfter(t *testing.T) {
	slots := []string{"09:00", "10:00", "11:00"}

	assert.Equal(t, []string{"11:00"}, FilterAfter(slots, 600))
	assert.Equal(t, slots, FilterAfter(slots, -1))
	assert.True(t, Contains(slots, "10:00"))
	assert.False(t, Contains(slots, "10:30"))
}
