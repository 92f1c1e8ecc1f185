package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

type RecurrenceMode string

const (
	RecurrenceWeekly   RecurrenceMode = "weekly"
	RecurrenceDaily    RecurrenceMode = "daily"
	RecurrenceWeekdays RecurrenceMode = "weekdays"
)

// RecurrenceConfig holds the fixed horizons per recurrence mode. The counts
// are configuration, never derived from input.
type RecurrenceConfig struct {
	Weeks       int // weekly occurrences
	Days        int // daily occurrences
	WeekdayDays int // day window filtered to Mon-Fri
}

// OccurrenceDates expands the recurrence starting at first into concrete
// dates. The first date is always included (for the weekday mode only when it
// falls on a weekday).
func OccurrenceDates(first time.Time, mode RecurrenceMode, cfg RecurrenceConfig) ([]time.Time, error) {
	var opt rrule.ROption
	switch mode {
	case RecurrenceWeekly:
		opt = rrule.ROption{Freq: rrule.WEEKLY, Count: cfg.Weeks, Dtstart: first}
	case RecurrenceDaily:
		opt = rrule.ROption{Freq: rrule.DAILY, Count: cfg.Days, Dtstart: first}
	case RecurrenceWeekdays:
		opt = rrule.ROption{
			Freq:      rrule.DAILY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
			Dtstart:   first,
			Until:     first.AddDate(0, 0, cfg.WeekdayDays-1),
		}
	default:
		return nil, fmt.Errorf("unknown recurrence mode %q: %w", mode, ErrValidation)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}
	return r.All(), nil
}

// NextWeekday returns the date of the given weekday within the week starting
// at weekStart (a Monday).
func NextWeekday(weekStart time.Time, day time.Weekday) time.Time {
	offset := (int(day) + 6) % 7
	return weekStart.AddDate(0, 0, offset)
}
