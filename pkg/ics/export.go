package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dersplan/dersplan/pkg/schedule"
)

const productId = "-//dersplan//calendar//EN"

// Render serializes the given events as an iCalendar document. Times are
// wall-clock local times; records with malformed times are skipped.
func Render(events []schedule.Event, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productId)

	for _, event := range events {
		start, err := eventTime(event.Date, event.StartTime)
		if err != nil {
			continue
		}
		end, err := eventTime(event.Date, event.EndTime)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(event.ID)
		ve.SetDtStampTime(now)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(event.Title)
		if event.Location != "" {
			ve.SetLocation(event.Location)
		}
		ve.SetDescription(fmt.Sprintf("category: %s", event.Category))
	}

	return cal.Serialize(), nil
}

func eventTime(date string, clock string) (time.Time, error) {
	day, err := time.ParseInLocation(schedule.DateKeyLayout, date, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := schedule.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
