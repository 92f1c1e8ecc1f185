package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	t.Run("parses HH:MM", func(t *testing.T) {
		minutes, err := ParseClock("09:30")
		assert.NoError(t, err)
		assert.Equal(t, 9*60+30, minutes)
	})

	t.Run("parses H:MM", func(t *testing.T) {
		minutes, err := ParseClock("9:05")
		assert.NoError(t, err)
		assert.Equal(t, 9*60+5, minutes)
	})

	t.Run("accepts dot separator", func(t *testing.T) {
		minutes, err := ParseClock("14.45")
		assert.NoError(t, err)
		assert.Equal(t, 14*60+45, minutes)
	})

	t.Run("rejects out of range values", func(t *testing.T) {
		_, err := ParseClock("25:99")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, input := range []string{"", "abc", "9h30", "9:3", "123:00"} {
			_, err := ParseClock(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestNormalizeClock(t *testing.T) {
	normalized, err := NormalizeClock("9.05")
	assert.NoError(t, err)
	assert.Equal(t, "09:05", normalized)
}

func TestEventValidate(t *testing.T) {
	valid := Event{
		Date:      "2026-03-02",
		Title:     "COMP101 Intro",
		StartTime: "10:00",
		EndTime:   "11:15",
		Category:  CategoryCourse,
	}

	t.Run("accepts a well-formed event", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		event := valid
		event.Title = ""
		assert.ErrorIs(t, event.Validate(), ErrValidation)
	})

	t.Run("rejects inverted time range", func(t *testing.T) {
		event := valid
		event.StartTime = "12:00"
		event.EndTime = "11:00"
		assert.ErrorIs(t, event.Validate(), ErrValidation)
	})

	t.Run("rejects zero-length time range", func(t *testing.T) {
		event := valid
		event.EndTime = event.StartTime
		assert.ErrorIs(t, event.Validate(), ErrValidation)
	})

	t.Run("rejects bad date key", func(t *testing.T) {
		event := valid
		event.Date = "02.03.2026"
		assert.ErrorIs(t, event.Validate(), ErrValidation)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		event := valid
		event.Category = "homework"
		assert.ErrorIs(t, event.Validate(), ErrValidation)
	})
}

func TestWellFormedTimes(t *testing.T) {
	assert.True(t, Event{StartTime: "09:00", EndTime: "10:00"}.WellFormedTimes())
	assert.False(t, Event{StartTime: "25:99", EndTime: "10:00"}.WellFormedTimes())
	assert.False(t, Event{StartTime: "09:00", EndTime: "later"}.WellFormedTimes())
}

func TestWeekStart(t *testing.T) {
	t.Run("returns Monday for a mid-week date", func(t *testing.T) {
		// 2026-03-05 is a Thursday
		day := time.Date(2026, 3, 5, 15, 30, 0, 0, time.Local)
		assert.Equal(t, "2026-03-02", DateKey(WeekStart(day)))
	})

	t.Run("Sunday belongs to the preceding Monday", func(t *testing.T) {
		day := time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local)
		assert.Equal(t, "2026-03-02", DateKey(WeekStart(day)))
	})

	t.Run("Monday maps to itself", func(t *testing.T) {
		day := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
		assert.Equal(t, "2026-03-02", DateKey(WeekStart(day)))
	})
}

func TestNextWeekday(t *testing.T) {
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local) // Monday

	assert.Equal(t, "2026-03-02", DateKey(NextWeekday(weekStart, time.Monday)))
	assert.Equal(t, "2026-03-06", DateKey(NextWeekday(weekStart, time.Friday)))
	assert.Equal(t, "2026-03-08", DateKey(NextWeekday(weekStart, time.Sunday)))
}

func TestOccurrenceDates(t *testing.T) {
	cfg := RecurrenceConfig{Weeks: 16, Days: 30, WeekdayDays: 28}
	first := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday

	t.Run("weekly horizon", func(t *testing.T) {
		dates, err := OccurrenceDates(first, RecurrenceWeekly, cfg)
		assert.NoError(t, err)
		assert.Len(t, dates, 16)
		for i := 1; i < len(dates); i++ {
			assert.Equal(t, 7*24*time.Hour, dates[i].Sub(dates[i-1]))
		}
	})

	t.Run("daily horizon", func(t *testing.T) {
		dates, err := OccurrenceDates(first, RecurrenceDaily, cfg)
		assert.NoError(t, err)
		assert.Len(t, dates, 30)
		assert.Equal(t, 24*time.Hour, dates[1].Sub(dates[0]))
	})

	t.Run("weekday-only horizon skips weekends", func(t *testing.T) {
		dates, err := OccurrenceDates(first, RecurrenceWeekdays, cfg)
		assert.NoError(t, err)
		// 28 day window starting on a Monday holds 20 weekdays.
		assert.Len(t, dates, 20)
		for _, date := range dates {
			assert.NotEqual(t, time.Saturday, date.Weekday())
			assert.NotEqual(t, time.Sunday, date.Weekday())
		}
	})

	t.Run("unknown mode fails", func(t *testing.T) {
		_, err := OccurrenceDates(first, "fortnightly", cfg)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
