package availability

import (
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/domain/interval"
	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
)

// Busy is an existing Pending/Confirmed booking as seen by the slot
// generator. DurationMinutes is the linked service's current duration, or
// zero when the service no longer resolves.
type Busy struct {
	Date            string
	Time            string
	DurationMinutes int
}

func (b Busy) Interval() (interval.Interval, bool) {
	start, err := interval.TimeToMinutes(b.Time)
	if err != nil {
		return interval.Interval{}, false
	}
	return interval.Interval{
		Start: start,
		End:   start + interval.EffectiveDuration(b.DurationMinutes),
	}, true
}

// GenerateSlots returns the ordered free start times ("HH:MM") for a service
// of durationMinutes on a day with the given weekday. The candidate grid is
// anchored at the opening time and stepped by the service's own duration.
func GenerateSlots(
	ws schedule.WorkingSchedule,
	weekday time.Weekday,
	durationMinutes int,
	busy []Busy,
) []string {

	if !ws.IsWorkingDay(weekday) || ws.End <= ws.Start {
		return []string{}
	}

	duration := interval.NormalizeDuration(durationMinutes)
	starts := freeStarts(ws, duration, duration, busyIntervals(ws, busy))

	slots := make([]string, 0, len(starts))
	for _, m := range starts {
		slots = append(slots, interval.MinutesToTime(m))
	}
	return slots
}

// Contains reports whether hm is one of the generated slots.
func Contains(slots []string, hm string) bool {
	for _, s := range slots {
		if s == hm {
			return true
		}
	}
	return false
}

// FilterAfter drops slots starting at or before the given minute of day.
func FilterAfter(slots []string, minute int) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		m, err := interval.TimeToMinutes(s)
		if err != nil || m <= minute {
			continue
		}
		out = append(out, s)
	}
	return out
}

func busyIntervals(ws schedule.WorkingSchedule, busy []Busy) []interval.Interval {
	out := make([]interval.Interval, 0, len(busy)+1)
	if ws.Break != nil {
		out = append(out, *ws.Break)
	}
	for _, b := range busy {
		if iv, ok := b.Interval(); ok {
			out = append(out, iv)
		}
	}
	return out
}

// freeStarts walks [ws.Start, ws.End-length] by step and keeps candidates
// whose [start, start+length) overlaps nothing busy.
func freeStarts(ws schedule.WorkingSchedule, step, length int, busy []interval.Interval) []int {
	if step <= 0 || length <= 0 {
		return nil
	}

	var out []int
	for cur := ws.Start; cur+length <= ws.End; cur += step {
		if interval.OverlapsAny(interval.Interval{Start: cur, End: cur + length}, busy) {
			continue
		}
		out = append(out, cur)
	}
	return out
}
