package importer

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ErrNoScheduleDetected is returned when a paste contains no recognizable
// day/time pairs. Nothing is written in that case; the user may retry.
var ErrNoScheduleDetected = errors.New("no schedule entries detected")

// Entry is one detected recurring slot: a weekday, a time range and the
// course text split into code and remainder.
type Entry struct {
	Day       time.Weekday
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Code      string // e.g. "COMP101", may be empty
	Title     string // remainder after the code; the code itself if the remainder is empty
}

// Config carries the knobs the strategies need. All of it comes from
// application configuration, never from the pasted text.
type Config struct {
	DayKeywords      map[string]time.Weekday
	DayLineMaxLength int
	RecurrenceWeeks  int
	// StartHour/EndHour bound the grid strategy's hour slots.
	StartHour int
	EndHour   int
}

// Strategy converts raw pasted text into entries. An empty result with a nil
// error means nothing was detected.
type Strategy interface {
	Name() string
	Parse(text string, cfg Config) []Entry
}

var (
	timeRangePattern = regexp.MustCompile(`(\d{1,2})[:.](\d{2})\s*[-–—]\s*(\d{1,2})[:.](\d{2})`)
	codePrefixPattern = regexp.MustCompile(`^([A-Z]{2,4}\s?\d{3,4})(.*)$`)
	codeAnywherePattern = regexp.MustCompile(`[A-Z]{2,4}\s?\d{3,4}`)
)

// fallbackTitle is used when no course text can be found near a time marker.
const fallbackTitle = "Ders"

// DefaultDayKeywords returns the built-in day name table (Turkish and
// English). Matching is case-insensitive substring.
func DefaultDayKeywords() map[string]time.Weekday {
	return map[string]time.Weekday{
		"pazartesi": time.Monday,
		"salı":      time.Tuesday,
		"sali":      time.Tuesday,
		"çarşamba":  time.Wednesday,
		"carsamba":  time.Wednesday,
		"perşembe":  time.Thursday,
		"persembe":  time.Thursday,
		"cuma":      time.Friday,
		"cumartesi": time.Saturday,
		"pazar":     time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}
}

// SplitCode separates a leading course code ("COMP101 Intro") from the rest.
// When there is no remainder the code doubles as the title.
func SplitCode(raw string) (code string, title string) {
	raw = strings.TrimSpace(raw)
	m := codePrefixPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", raw
	}
	code = m[1]
	title = strings.TrimSpace(m[2])
	if title == "" {
		title = code
	}
	return code, title
}

// DisplayTitle reassembles the stored title from code and remainder.
func (e Entry) DisplayTitle() string {
	if e.Code == "" {
		return e.Title
	}
	if e.Title == e.Code {
		return e.Code
	}
	return e.Code + " " + e.Title
}

// matchDay finds the weekday keyword contained in line, if any. Longer
// keywords are checked first so that "pazartesi" is never shadowed by
// "pazar".
func matchDay(line string, keywords map[string]time.Weekday) (time.Weekday, bool) {
	lower := strings.ToLower(line)

	candidates := make([]string, 0, len(keywords))
	for keyword := range keywords {
		candidates = append(candidates, keyword)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	for _, keyword := range candidates {
		if strings.Contains(lower, keyword) {
			return keywords[keyword], true
		}
	}
	return 0, false
}

// isDayLine reports whether the line is a day header: it mentions a weekday
// and is short enough not to be a title that merely contains a day name.
func isDayLine(line string, cfg Config) (time.Weekday, bool) {
	if len([]rune(line)) > cfg.DayLineMaxLength {
		return 0, false
	}
	return matchDay(line, cfg.DayKeywords)
}

// matchTimeRange extracts a normalized H:MM-H:MM range from the line.
func matchTimeRange(line string) (start string, end string, ok bool) {
	m := timeRangePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return pad(m[1]) + ":" + m[2], pad(m[3]) + ":" + m[4], true
}

func pad(hour string) string {
	if len(hour) == 1 {
		return "0" + hour
	}
	return hour
}

// splitLines returns the trimmed, non-empty lines of the paste.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
