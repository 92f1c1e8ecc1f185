package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		DayKeywords:      DefaultDayKeywords(),
		DayLineMaxLength: 20,
		RecurrenceWeeks:  4,
		StartHour:        8,
		EndHour:          21,
	}
}

func TestDayTimeStrategyParse(t *testing.T) {
	strategy := DayTimeStrategy{}

	t.Run("day header, time range, title on next line", func(t *testing.T) {
		entries := strategy.Parse("Pazartesi\n10:00 - 11:15\nCOMP101 Intro", testConfig())

		require.Len(t, entries, 1)
		assert.Equal(t, time.Monday, entries[0].Day)
		assert.Equal(t, "10:00", entries[0].StartTime)
		assert.Equal(t, "11:15", entries[0].EndTime)
		assert.Equal(t, "COMP101", entries[0].Code)
		assert.Equal(t, "Intro", entries[0].Title)
		assert.Equal(t, "COMP101 Intro", entries[0].DisplayTitle())
	})

	t.Run("title on the preceding line wins", func(t *testing.T) {
		entries := strategy.Parse("Salı\nMATH201 Calculus\n13:00 - 14:30", testConfig())

		require.Len(t, entries, 1)
		assert.Equal(t, time.Tuesday, entries[0].Day)
		assert.Equal(t, "MATH201", entries[0].Code)
		assert.Equal(t, "Calculus", entries[0].Title)
	})

	t.Run("one day header covers several time ranges", func(t *testing.T) {
		text := "Çarşamba\nCOMP101 Intro\n09:00 - 10:15\nPHYS110 Mechanics\n10:30 - 11:45"
		entries := strategy.Parse(text, testConfig())

		require.Len(t, entries, 2)
		assert.Equal(t, time.Wednesday, entries[0].Day)
		assert.Equal(t, time.Wednesday, entries[1].Day)
		assert.Equal(t, "COMP101", entries[0].Code)
		assert.Equal(t, "PHYS110", entries[1].Code)
	})

	t.Run("time range before any day header is ignored", func(t *testing.T) {
		entries := strategy.Parse("10:00 - 11:15\nCOMP101 Intro", testConfig())
		assert.Empty(t, entries)
	})

	t.Run("falls back to a default title when no code line is near", func(t *testing.T) {
		entries := strategy.Parse("Cuma\n08:30 - 09:45", testConfig())

		require.Len(t, entries, 1)
		assert.Equal(t, "", entries[0].Code)
		assert.Equal(t, fallbackTitle, entries[0].Title)
	})

	t.Run("english day names and dot-separated times", func(t *testing.T) {
		entries := strategy.Parse("Thursday\n9.00 - 10.15\nCHEM102 Organic", testConfig())

		require.Len(t, entries, 1)
		assert.Equal(t, time.Thursday, entries[0].Day)
		assert.Equal(t, "09:00", entries[0].StartTime)
		assert.Equal(t, "10:15", entries[0].EndTime)
	})

	t.Run("pazartesi is not shadowed by pazar", func(t *testing.T) {
		entries := strategy.Parse("Pazartesi\n10:00 - 11:00", testConfig())

		require.Len(t, entries, 1)
		assert.Equal(t, time.Monday, entries[0].Day)
	})

	t.Run("long line with a day name is not a header", func(t *testing.T) {
		// "Pazartesi" appears inside a long title line; the preceding header
		// (Tuesday) stays in effect.
		text := "Salı\nHIST210 Pazartesi İhtilali ve Sonrası\n13:00 - 14:15"
		entries := strategy.Parse(text, testConfig())

		require.Len(t, entries, 1)
		assert.Equal(t, time.Tuesday, entries[0].Day)
		assert.Equal(t, "HIST210", entries[0].Code)
	})

	t.Run("nothing detected in prose", func(t *testing.T) {
		entries := strategy.Parse("Bu dönem ders programım henüz belli değil.", testConfig())
		assert.Empty(t, entries)
	})
}

func TestSplitCode(t *testing.T) {
	t.Run("splits a leading code", func(t *testing.T) {
		code, title := SplitCode("COMP101 Introduction to Programming")
		assert.Equal(t, "COMP101", code)
		assert.Equal(t, "Introduction to Programming", title)
	})

	t.Run("code with embedded space", func(t *testing.T) {
		code, title := SplitCode("MATH 201 Calculus")
		assert.Equal(t, "MATH 201", code)
		assert.Equal(t, "Calculus", title)
	})

	t.Run("bare code doubles as title", func(t *testing.T) {
		code, title := SplitCode("PHYS110")
		assert.Equal(t, "PHYS110", code)
		assert.Equal(t, "PHYS110", title)
	})

	t.Run("no code at all", func(t *testing.T) {
		code, title := SplitCode("Yoga dersi")
		assert.Equal(t, "", code)
		assert.Equal(t, "Yoga dersi", title)
	})
}

func TestMatchTimeRange(t *testing.T) {
	t.Run("pads single digit hours", func(t *testing.T) {
		start, end, ok := matchTimeRange("9:00-10:15")
		require.True(t, ok)
		assert.Equal(t, "09:00", start)
		assert.Equal(t, "10:15", end)
	})

	t.Run("accepts en and em dashes", func(t *testing.T) {
		for _, line := range []string{"10:00 – 11:15", "10:00 — 11:15"} {
			_, _, ok := matchTimeRange(line)
			assert.True(t, ok, "line %q", line)
		}
	})

	t.Run("rejects a lone time", func(t *testing.T) {
		_, _, ok := matchTimeRange("10:00")
		assert.False(t, ok)
	})
}
