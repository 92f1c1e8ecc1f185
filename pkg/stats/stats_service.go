package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/dersplan/dersplan/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type StatsService interface {
	GetWeeklyStats(ctx context.Context, date string) (WeeklySummary, error)
}

type StatsServiceImpl struct {
	schedule schedule.Service
}

func NewStatsServiceImpl(scheduleService schedule.Service) *StatsServiceImpl {
	return &StatsServiceImpl{schedule: scheduleService}
}

// GetWeeklyStats sums the scheduled durations of the week containing date,
// Monday through Sunday. Records with malformed times contribute nothing.
func (s *StatsServiceImpl) GetWeeklyStats(ctx context.Context, date string) (WeeklySummary, error) {
	day, err := time.Parse(schedule.DateKeyLayout, date)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("invalid date %q: %w", date, schedule.ErrValidation)
	}

	weekStart := schedule.WeekStart(day)
	weekEnd := weekStart.AddDate(0, 0, 6)

	buckets, err := s.schedule.EventsForRange(ctx, schedule.DateKey(weekStart), schedule.DateKey(weekEnd))
	if err != nil {
		return WeeklySummary{}, err
	}

	summary := WeeklySummary{
		WeekStart: schedule.DateKey(weekStart),
		WeekEnd:   schedule.DateKey(weekEnd),
		Days:      make([]DailyStats, 0, 7),
	}
	byCategory := make(map[schedule.Category]*CategoryStats)

	for offset := 0; offset < 7; offset++ {
		dateKey := schedule.DateKey(weekStart.AddDate(0, 0, offset))
		daily := DailyStats{
			Date:       dateKey,
			ByCategory: make(map[schedule.Category]time.Duration),
		}

		for _, event := range buckets[dateKey] {
			duration, ok := eventDuration(event)
			if !ok {
				log.Debugf("skipping record %s with malformed times in stats", event.ID)
				continue
			}
			daily.Total += duration
			daily.ByCategory[event.Category] += duration

			cs := byCategory[event.Category]
			if cs == nil {
				cs = &CategoryStats{Category: event.Category}
				byCategory[event.Category] = cs
			}
			cs.Total += duration
			cs.Events++
			summary.Total += duration
		}

		summary.Days = append(summary.Days, daily)
	}

	summary.Categories = make([]CategoryStats, 0, len(byCategory))
	for _, category := range categoryOrder {
		if cs := byCategory[category]; cs != nil {
			summary.Categories = append(summary.Categories, *cs)
		}
	}

	return summary, nil
}

func eventDuration(event schedule.Event) (time.Duration, bool) {
	start, err := schedule.ParseClock(event.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := schedule.ParseClock(event.EndTime)
	if err != nil {
		return 0, false
	}
	return time.Duration(end-start) * time.Minute, true
}
