package importer

import (
	"strings"
	"time"

	"github.com/dersplan/dersplan/pkg/schedule"
)

// GridStrategy handles exports where the timetable arrives as one cell per
// line, column by column: all slots for Monday over the visible hours, then
// Tuesday, and so on. A leading header section (seven day names plus one line
// per visible hour) is skipped when present. A non-empty cell becomes a one
// hour entry in its day/hour slot.
type GridStrategy struct{}

func (GridStrategy) Name() string { return "grid" }

func (GridStrategy) Parse(text string, cfg Config) []Entry {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		// Empty cells are meaningful here: they are free slots.
		lines = append(lines, strings.TrimSpace(line))
	}

	hoursPerDay := cfg.EndHour - cfg.StartHour + 1
	headerLines := 7 + hoursPerDay
	if len(lines) > headerLines {
		lines = lines[headerLines:]
	}

	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	entries := make([]Entry, 0)
	idx := 0
	for _, day := range weekdays {
		for hour := cfg.StartHour; hour <= cfg.EndHour; hour++ {
			if idx >= len(lines) {
				return entries
			}
			cell := lines[idx]
			idx++
			if cell == "" {
				continue
			}
			code, title := SplitCode(cell)
			entries = append(entries, Entry{
				Day:       day,
				StartTime: schedule.FormatClock(hour * 60),
				EndTime:   schedule.FormatClock((hour + 1) * 60),
				Code:      code,
				Title:     title,
			})
		}
	}

	return entries
}
