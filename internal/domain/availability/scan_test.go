package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func scanAt(t *testing.T, ws schedule.WorkingSchedule, busy map[string][]Busy, now time.Time) QuickSlots {
	t.Helper()
	return ScanUpcoming(ws, busy, ScanOptions{Now: now, Location: saoPaulo})
}

func times(previews []SlotPreview) []string {
	out := make([]string, 0, len(previews))
	for _, p := range previews {
		out = append(out, p.Label+" "+p.Time)
	}
	return out
}

func TestScanUpcoming(t *testing.T) {
	ws := weekdays(t, "09:00", "17:00")

	t.Run("caps buckets and honours the lead time", func(t *testing.T) {
		now := time.Date(2026, 10, 19, 10, 10, 0, 0, saoPaulo) // Monday

		qs := scanAt(t, ws, nil, now)

		require.True(t, qs.HasSchedule)
		assert.Equal(t, []string{"Today 11:00", "Today 11:30", "Tue 20 09:00"}, times(qs.Morning))
		assert.Equal(t, []string{"Today 12:00", "Today 12:30", "Today 13:00"}, times(qs.Evening))
		for _, p := range qs.Morning {
			assert.Equal(t, PeriodMorning, p.Period)
		}
		for _, p := range qs.Evening {
			assert.Equal(t, PeriodEvening, p.Period)
		}
		assert.Equal(t, "2026-10-20", qs.Morning[2].Date)
	})

	t.Run("never offers a slot inside the lead window", func(t *testing.T) {
		now := time.Date(2026, 10, 19, 10, 30, 0, 0, saoPaulo)

		qs := scanAt(t, ws, nil, now)

		for _, p := range append(qs.Morning, qs.Evening...) {
			if p.Date != "2026-10-19" {
				continue
			}
			m := mustMinutes(t, p.Time)
			assert.Greater(t, m, 10*60+30+30, p.Time)
		}
		assert.Equal(t, "Today 11:30", times(qs.Morning)[0])
	})

	t.Run("instant expressed in another zone is converted", func(t *testing.T) {
		now := time.Date(2026, 10, 19, 13, 10, 0, 0, time.UTC) // 10:10 local

		qs := scanAt(t, ws, nil, now)

		assert.Equal(t, "Today 11:00", times(qs.Morning)[0])
	})

	t.Run("busy bookings are skipped", func(t *testing.T) {
		now := time.Date(2026, 10, 19, 10, 10, 0, 0, saoPaulo)
		busy := GroupByDate([]Busy{
			{Date: "2026-10-19", Time: "11:00", DurationMinutes: 60},
			{Date: "2026-10-19", Time: "12:00", DurationMinutes: 90},
		})

		qs := scanAt(t, ws, busy, now)

		assert.Equal(t, []string{"Tue 20 09:00", "Tue 20 09:30", "Tue 20 10:00"}, times(qs.Morning))
		assert.Equal(t, []string{"Today 13:30", "Today 14:00", "Today 14:30"}, times(qs.Evening))
	})

	t.Run("late friday rolls over the weekend", func(t *testing.T) {
		now := time.Date(2026, 10, 23, 16, 45, 0, 0, saoPaulo)

		qs := scanAt(t, ws, nil, now)

		assert.Equal(t, []string{"Mon 26 09:00", "Mon 26 09:30", "Mon 26 10:00"}, times(qs.Morning))
		assert.Equal(t, []string{"Mon 26 12:00", "Mon 26 12:30", "Mon 26 13:00"}, times(qs.Evening))
	})

	t.Run("stops scanning once both buckets are full", func(t *testing.T) {
		now := time.Date(2026, 10, 19, 8, 0, 0, 0, saoPaulo)
		var labelled []int

		qs := ScanUpcoming(ws, nil, ScanOptions{
			Now:      now,
			Location: saoPaulo,
			Labeler: func(offset int, day time.Time) string {
				labelled = append(labelled, offset)
				return EnglishLabel(offset, day)
			},
		})

		assert.Len(t, qs.Morning, 3)
		assert.Len(t, qs.Evening, 3)
		assert.Equal(t, []int{0}, labelled)
	})

	t.Run("window bounds the scan", func(t *testing.T) {
		now := time.Date(2026, 10, 23, 16, 45, 0, 0, saoPaulo) // Friday, closed weekend ahead

		qs := ScanUpcoming(ws, nil, ScanOptions{Now: now, Location: saoPaulo, WindowDays: 3})

		assert.True(t, qs.HasSchedule)
		assert.Empty(t, qs.Morning)
		assert.Empty(t, qs.Evening)
	})

	t.Run("unconfigured schedule", func(t *testing.T) {
		qs := scanAt(t, schedule.Unconfigured(), nil, time.Now())

		assert.False(t, qs.HasSchedule)
		assert.NotNil(t, qs.Morning)
		assert.NotNil(t, qs.Evening)
		assert.Empty(t, qs.Morning)
		assert.Empty(t, qs.Evening)
	})
}

func mustMinutes(t *testing.T, hm string) int {
	t.Helper()
	parsed, err := time.Parse("15:04", hm)
	require.NoError(t, err)
	return parsed.Hour()*60 + parsed.Minute()
}

func TestScanUpcoming_ZeroLeadUsesDefault(t *testing.T) {
	ws := weekdays(t, "09:00", "17:00")
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, saoPaulo)

	qs := ScanUpcoming(ws, nil, ScanOptions{Now: now, Location: saoPaulo, LeadTimeMinutes: 0})
	wider := ScanUpcoming(ws, nil, ScanOptions{Now: now, Location: saoPaulo, LeadTimeMinutes: 90})

	assert.Equal(t, "11:00", qs.Morning[0].Time)
	assert.Equal(t, "Tue 20 09:00", times(wider.Morning)[0])
	assert.Equal(t, "Today 12:00", times(wider.Evening)[0])
}

func TestQuickSlotsStale(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, saoPaulo)
	qs := func(date, hm string) QuickSlots {
		return QuickSlots{HasSchedule: true, Evening: []SlotPreview{{Date: date, Time: hm}}}
	}

	assert.False(t, qs("2026-10-19", "10:31").Stale(now, 30))
	assert.True(t, qs("2026-10-19", "10:30").Stale(now, 30))
	assert.True(t, qs("2026-10-18", "16:00").Stale(now, 30))
	assert.False(t, qs("2026-10-20", "09:00").Stale(now, 30))
	assert.True(t, qs("2026-10-19", "11:00").Stale(now, 120))
	assert.False(t, QuickSlots{}.Stale(now, 30))
}
