package schedule

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/domain/interval"
)

const (
	DefaultStart = "09:00"
	DefaultEnd   = "18:00"
)

// Config is the stored shape of a provider's working hours.
type Config struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	WorkingDays []int  `json:"working_days"`
	BreakStart  string `json:"break_start,omitempty"`
	BreakEnd    string `json:"break_end,omitempty"`
}

// WorkingSchedule is the normalized, read-only view of a provider's hours.
// An unconfigured schedule has no working days and never yields slots.
type WorkingSchedule struct {
	Configured bool
	Start      int
	End        int
	Days       [7]bool
	Break      *interval.Interval
}

func Unconfigured() WorkingSchedule {
	return WorkingSchedule{
		Start: interval.MustMinutes(DefaultStart),
		End:   interval.MustMinutes(DefaultEnd),
	}
}

// Parse never fails: anything malformed, missing or partial collapses into
// the unconfigured schedule.
func Parse(raw []byte) WorkingSchedule {
	if len(raw) == 0 {
		return Unconfigured()
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Unconfigured()
	}
	return FromConfig(cfg)
}

func FromConfig(cfg Config) WorkingSchedule {
	start, err := interval.TimeToMinutes(cfg.StartTime)
	if err != nil {
		return Unconfigured()
	}
	end, err := interval.TimeToMinutes(cfg.EndTime)
	if err != nil {
		return Unconfigured()
	}
	if end <= start || len(cfg.WorkingDays) == 0 {
		return Unconfigured()
	}

	ws := WorkingSchedule{Configured: true, Start: start, End: end}
	for _, d := range cfg.WorkingDays {
		if d < 0 || d > 6 {
			return Unconfigured()
		}
		ws.Days[d] = true
	}

	// a bad break only drops the break
	if cfg.BreakStart != "" && cfg.BreakEnd != "" {
		bs, errS := interval.TimeToMinutes(cfg.BreakStart)
		be, errE := interval.TimeToMinutes(cfg.BreakEnd)
		if errS == nil && errE == nil && bs < be && bs >= start && be <= end {
			ws.Break = &interval.Interval{Start: bs, End: be}
		}
	}

	return ws
}

func (ws WorkingSchedule) IsWorkingDay(day time.Weekday) bool {
	if !ws.Configured {
		return false
	}
	return ws.Days[int(day)]
}

func (ws WorkingSchedule) HasAnyWorkingDay() bool {
	if !ws.Configured {
		return false
	}
	for _, open := range ws.Days {
		if open {
			return true
		}
	}
	return false
}

func (ws WorkingSchedule) WorkingDays() []int {
	days := make([]int, 0, 7)
	for d, open := range ws.Days {
		if open {
			days = append(days, d)
		}
	}
	return days
}

// Config renders the schedule back to its stored shape.
func (ws WorkingSchedule) Config() Config {
	cfg := Config{
		StartTime:   interval.MinutesToTime(ws.Start),
		EndTime:     interval.MinutesToTime(ws.End),
		WorkingDays: ws.WorkingDays(),
	}
	if ws.Break != nil {
		cfg.BreakStart = interval.MinutesToTime(ws.Break.Start)
		cfg.BreakEnd = interval.MinutesToTime(ws.Break.End)
	}
	return cfg
}

// Encode returns the canonical stored blob for cfg.
func Encode(cfg Config) ([]byte, error) {
	days := append([]int(nil), cfg.WorkingDays...)
	sort.Ints(days)

	uniq := days[:0]
	for i, d := range days {
		if i == 0 || d != days[i-1] {
			uniq = append(uniq, d)
		}
	}
	if uniq == nil {
		uniq = []int{}
	}
	cfg.WorkingDays = uniq

	return json.Marshal(cfg)
}
