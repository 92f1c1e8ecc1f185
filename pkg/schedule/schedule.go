package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("event not found")
)

// DateKeyLayout is the canonical YYYY-MM-DD form used as the storage bucket key.
const DateKeyLayout = "2006-01-02"

type Category string

const (
	CategoryCourse   Category = "course"
	CategoryPersonal Category = "personal"
	CategoryFinance  Category = "finance"
	CategorySpecial  Category = "special"
)

// Valid reports whether c is one of the known categories. Category only
// drives color/icon selection on the client; it never affects behavior.
func (c Category) Valid() bool {
	switch c {
	case CategoryCourse, CategoryPersonal, CategoryFinance, CategorySpecial:
		return true
	}
	return false
}

// Event is one concrete dated calendar entry. Recurrence is expanded at
// creation time into independent records; there is no series link between
// occurrences, so deleting or editing one never touches the others.
type Event struct {
	ID        string
	Date      string // YYYY-MM-DD
	Title     string
	Location  string
	StartTime string // HH:MM wall clock
	EndTime   string // HH:MM wall clock, same day
	Category  Category
}

var clockPattern = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)

// ParseClock converts an H:MM / HH:MM wall-clock string (":" or "." separator)
// into minutes from midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, ErrValidation)
	}
	hour := int(m[1][0]-'0')
	if len(m[1]) == 2 {
		hour = hour*10 + int(m[1][1]-'0')
	}
	minute := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range: %w", s, ErrValidation)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes from midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock parses s and re-renders it in canonical HH:MM form.
func NormalizeClock(s string) (string, error) {
	minutes, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(minutes), nil
}

// Validate checks the invariants required before an event may be persisted.
func (e Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("title is required: %w", ErrValidation)
	}
	if _, err := time.Parse(DateKeyLayout, e.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", e.Date, ErrValidation)
	}
	start, err := ParseClock(e.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(e.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("start time %s must be before end time %s: %w", e.StartTime, e.EndTime, ErrValidation)
	}
	if e.Category != "" && !e.Category.Valid() {
		return fmt.Errorf("unknown category %q: %w", e.Category, ErrValidation)
	}
	return nil
}

// WellFormedTimes reports whether the stored times still parse. Used by the
// cleanup pass to drop malformed legacy or imported records.
func (e Event) WellFormedTimes() bool {
	if _, err := ParseClock(e.StartTime); err != nil {
		return false
	}
	_, err := ParseClock(e.EndTime)
	return err == nil
}

// DateKey returns the bucket key for t.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// WeekStart returns the Monday of the week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
