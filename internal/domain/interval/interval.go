package interval

import (
	"fmt"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	MinDurationMinutes     = 15
	MaxDurationMinutes     = 240
	DefaultDurationMinutes = 60

	// FallbackDurationMinutes sizes a busy booking whose service can no
	// longer be resolved.
	FallbackDurationMinutes = 60
)

// Interval is a half-open [Start, End) span in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.Start, i.End, o.Start, o.End)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Every conflict check in the engine goes through this predicate.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func OverlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// TimeToMinutes parses an "HH:MM" time of day.
func TimeToMinutes(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MustMinutes is TimeToMinutes for values already validated upstream.
func MustMinutes(hm string) int {
	m, err := TimeToMinutes(hm)
	if err != nil {
		panic(err)
	}
	return m
}

// MinutesToTime formats minutes since midnight as zero-padded "HH:MM".
// Values outside a day wrap around.
func MinutesToTime(minutes int) string {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NormalizeDuration clamps a requested duration to [15, 240] minutes,
// defaulting to 60 when absent.
func NormalizeDuration(minutes int) int {
	switch {
	case minutes <= 0:
		return DefaultDurationMinutes
	case minutes < MinDurationMinutes:
		return MinDurationMinutes
	case minutes > MaxDurationMinutes:
		return MaxDurationMinutes
	}
	return minutes
}

// EffectiveDuration is the length of an existing booking: its service
// duration when known, otherwise the fixed fallback.
func EffectiveDuration(serviceMinutes int) int {
	if serviceMinutes > 0 {
		return serviceMinutes
	}
	return FallbackDurationMinutes
}
