package importer

import "time"

// DayTimeStrategy is the canonical line-oriented heuristic: a short line
// naming a weekday sets the current day; every following time-range line
// emits an entry under that day until another day header appears. The course
// text is taken from the neighboring line that carries a course code.
//
// Scan states are just "no day yet" and "day set"; a day header is consumed
// and never treated as a title, and one header may cover several time ranges.
type DayTimeStrategy struct{}

func (DayTimeStrategy) Name() string { return "daytime" }

func (DayTimeStrategy) Parse(text string, cfg Config) []Entry {
	lines := splitLines(text)

	entries := make([]Entry, 0)
	currentDay := time.Sunday
	daySet := false

	for i, line := range lines {
		if day, ok := isDayLine(line, cfg); ok {
			currentDay = day
			daySet = true
			continue
		}

		start, end, ok := matchTimeRange(line)
		if !ok || !daySet {
			continue
		}

		title := fallbackTitle
		if i > 0 && isTitleLine(lines[i-1], cfg) {
			title = lines[i-1]
		} else if i+1 < len(lines) && isTitleLine(lines[i+1], cfg) {
			title = lines[i+1]
		}

		code, rest := SplitCode(title)
		entries = append(entries, Entry{
			Day:       currentDay,
			StartTime: start,
			EndTime:   end,
			Code:      code,
			Title:     rest,
		})
	}

	return entries
}

// isTitleLine accepts a neighbor line as course text when it carries a course
// code and is neither a day header nor another time marker.
func isTitleLine(line string, cfg Config) bool {
	if _, ok := isDayLine(line, cfg); ok {
		return false
	}
	if _, _, ok := matchTimeRange(line); ok {
		return false
	}
	return codeAnywherePattern.MatchString(line)
}
