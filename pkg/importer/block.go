package importer

import (
	"time"

	"github.com/dersplan/dersplan/pkg/schedule"
)

// CodeBlockStrategy groups lines under course-code headers: a line starting
// with a department code opens a block, and the lines until the next code
// line are scanned for day keywords and a time range. A block may recur on
// several days. Blocks without at least one day and a start time are dropped.
type CodeBlockStrategy struct{}

func (CodeBlockStrategy) Name() string { return "block" }

type codeBlock struct {
	code  string
	title string
	days  []time.Weekday
	start string
	end   string
}

func (CodeBlockStrategy) Parse(text string, cfg Config) []Entry {
	lines := splitLines(text)

	entries := make([]Entry, 0)
	var current *codeBlock

	flush := func() {
		if current == nil {
			return
		}
		if len(current.days) > 0 && current.start != "" {
			end := current.end
			if end == "" {
				// No end time in the block: assume a one hour slot.
				if minutes, err := schedule.ParseClock(current.start); err == nil {
					end = schedule.FormatClock(minutes + 60)
				}
			}
			for _, day := range current.days {
				entries = append(entries, Entry{
					Day:       day,
					StartTime: current.start,
					EndTime:   end,
					Code:      current.code,
					Title:     current.title,
				})
			}
		}
		current = nil
	}

	for _, line := range lines {
		if codePrefixPattern.MatchString(line) {
			flush()
			code, title := SplitCode(line)
			current = &codeBlock{code: code, title: title}
			continue
		}
		if current == nil {
			continue
		}
		if day, ok := matchDay(line, cfg.DayKeywords); ok {
			if !containsDay(current.days, day) {
				current.days = append(current.days, day)
			}
		}
		if start, end, ok := matchTimeRange(line); ok {
			current.start = start
			current.end = end
		}
	}
	flush()

	return entries
}

func containsDay(days []time.Weekday, day time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
