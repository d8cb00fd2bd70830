package availability

import (
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/domain/interval"
	"github.com/BruksfildServices01/booking-engine/internal/domain/schedule"
)

const (
	DefaultWindowDays         = 7
	DefaultGranularityMinutes = 30
	DefaultLeadTimeMinutes    = 30
	DefaultPerBucket          = 3

	noonMinutes = 12 * 60
)

type Period string

const (
	PeriodMorning Period = "morning"
	PeriodEvening Period = "evening"
)

type SlotPreview struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Label  string `json:"label"`
	Period Period `json:"period"`
}

type QuickSlots struct {
	HasSchedule bool          `json:"has_schedule"`
	Morning     []SlotPreview `json:"morning"`
	Evening     []SlotPreview `json:"evening"`
}

// Labeler names a scanned day; offset 0 is today.
type Labeler func(offset int, day time.Time) string

func EnglishLabel(offset int, day time.Time) string {
	if offset == 0 {
		return "Today"
	}
	return day.Format("Mon 2")
}

type ScanOptions struct {
	Now                time.Time
	Location           *time.Location
	WindowDays         int
	GranularityMinutes int
	LeadTimeMinutes    int
	PerBucket          int
	Labeler            Labeler
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.GranularityMinutes <= 0 {
		o.GranularityMinutes = DefaultGranularityMinutes
	}
	if o.LeadTimeMinutes <= 0 {
		o.LeadTimeMinutes = DefaultLeadTimeMinutes
	}
	if o.PerBucket <= 0 {
		o.PerBucket = DefaultPerBucket
	}
	if o.Labeler == nil {
		o.Labeler = EnglishLabel
	}
	return o
}

// ScanUpcoming builds the "next available" teaser: walking WindowDays days
// from today (in opts.Location) on a fixed grid, it fills a morning and an
// evening bucket and stops as soon as both are full. busyByDate is keyed by
// "YYYY-MM-DD".
func ScanUpcoming(
	ws schedule.WorkingSchedule,
	busyByDate map[string][]Busy,
	opts ScanOptions,
) QuickSlots {

	opts = opts.withDefaults()

	out := QuickSlots{
		HasSchedule: ws.HasAnyWorkingDay(),
		Morning:     []SlotPreview{},
		Evening:     []SlotPreview{},
	}
	if !out.HasSchedule {
		return out
	}

	now := opts.Now.In(opts.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, opts.Location)
	cutoff := now.Hour()*60 + now.Minute() + opts.LeadTimeMinutes

	full := func() bool {
		return len(out.Morning) >= opts.PerBucket && len(out.Evening) >= opts.PerBucket
	}

	for offset := 0; offset < opts.WindowDays && !full(); offset++ {
		day := today.AddDate(0, 0, offset)
		if !ws.IsWorkingDay(day.Weekday()) {
			continue
		}

		date := day.Format("2006-01-02")
		busy := busyIntervals(ws, busyByDate[date])
		starts := freeStarts(ws, opts.GranularityMinutes, opts.GranularityMinutes, busy)
		label := opts.Labeler(offset, day)

		for _, m := range starts {
			if offset == 0 && m <= cutoff {
				continue
			}

			preview := SlotPreview{
				Date:  date,
				Time:  interval.MinutesToTime(m),
				Label: label,
			}

			if m < noonMinutes {
				if len(out.Morning) >= opts.PerBucket {
					continue
				}
				preview.Period = PeriodMorning
				out.Morning = append(out.Morning, preview)
			} else {
				if len(out.Evening) >= opts.PerBucket {
					continue
				}
				preview.Period = PeriodEvening
				out.Evening = append(out.Evening, preview)
			}

			if full() {
				break
			}
		}
	}

	return out
}

// Stale reports whether qs offers anything before today or inside the lead
// window as seen from now, which must already be in the provider's zone.
func (qs QuickSlots) Stale(now time.Time, leadMinutes int) bool {
	today := now.Format("2006-01-02")
	cutoff := now.Hour()*60 + now.Minute() + leadMinutes

	for _, bucket := range [][]SlotPreview{qs.Morning, qs.Evening} {
		for _, p := range bucket {
			if p.Date < today {
				return true
			}
			if p.Date != today {
				continue
			}
			m, err := interval.TimeToMinutes(p.Time)
			if err != nil || m <= cutoff {
				return true
			}
		}
	}
	return false
}

// GroupByDate indexes busy bookings by their calendar date.
func GroupByDate(busy []Busy) map[string][]Busy {
	out := make(map[string][]Busy)
	for _, b := range busy {
		out[b.Date] = append(out[b.Date], b)
	}
	return out
}
