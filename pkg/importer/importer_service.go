package importer

import (
	"context"
	"fmt"

	"github.com/dersplan/dersplan/internal/event_bus"
	"github.com/dersplan/dersplan/internal/utils"
	"github.com/dersplan/dersplan/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// Summary reports the outcome of one import: how many recurring entries were
// detected in the text and how many dated records were written.
type Summary struct {
	Strategy string
	Detected int
	Added    int
}

type Service interface {
	ImportText(ctx context.Context, text string, strategyName string) (Summary, error)
}

type ServiceImpl struct {
	schedule        schedule.Service
	strategies      map[string]Strategy
	defaultStrategy string
	cfg             Config
	bus             *event_bus.EventBus
	clock           utils.Clock
}

func NewService(scheduleService schedule.Service, cfg Config, defaultStrategy string, bus *event_bus.EventBus) *ServiceImpl {
	if cfg.DayKeywords == nil {
		cfg.DayKeywords = DefaultDayKeywords()
	}
	strategies := map[string]Strategy{}
	for _, s := range []Strategy{DayTimeStrategy{}, CodeBlockStrategy{}, GridStrategy{}} {
		strategies[s.Name()] = s
	}
	return &ServiceImpl{
		schedule:        scheduleService,
		strategies:      strategies,
		defaultStrategy: defaultStrategy,
		cfg:             cfg,
		bus:             bus,
		clock:           &utils.SystemClock{},
	}
}

// ImportText parses the paste with the requested strategy and expands every
// detected entry into dated records over the configured weekly horizon,
// anchored to the Monday of the current week. Imports are deliberately not
// idempotent: the same paste twice writes every record twice.
func (s *ServiceImpl) ImportText(ctx context.Context, text string, strategyName string) (Summary, error) {
	if strategyName == "" {
		strategyName = s.defaultStrategy
	}
	strategy, ok := s.strategies[strategyName]
	if !ok {
		return Summary{}, fmt.Errorf("unknown import strategy %q: %w", strategyName, schedule.ErrValidation)
	}

	entries := strategy.Parse(text, s.cfg)
	if len(entries) == 0 {
		return Summary{Strategy: strategy.Name()}, ErrNoScheduleDetected
	}

	weekStart := schedule.WeekStart(s.clock.Now())
	recurrence := schedule.RecurrenceConfig{Weeks: s.cfg.RecurrenceWeeks}

	added := 0
	for _, entry := range entries {
		first := schedule.NextWeekday(weekStart, entry.Day)
		dates, err := schedule.OccurrenceDates(first, schedule.RecurrenceWeekly, recurrence)
		if err != nil {
			return Summary{Strategy: strategy.Name(), Detected: len(entries), Added: added}, err
		}
		for _, date := range dates {
			_, err := s.schedule.CreateEvent(ctx, schedule.Event{
				Date:      schedule.DateKey(date),
				Title:     entry.DisplayTitle(),
				StartTime: entry.StartTime,
				EndTime:   entry.EndTime,
				Category:  schedule.CategoryCourse,
			})
			if err != nil {
				log.Warnf("skipping invalid imported entry %q: %v", entry.DisplayTitle(), err)
				continue
			}
			added++
		}
	}

	summary := Summary{Strategy: strategy.Name(), Detected: len(entries), Added: added}
	if s.bus != nil {
		err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ScheduleImportedType, event_bus.ScheduleImported{
			Strategy: summary.Strategy,
			Detected: summary.Detected,
			Added:    summary.Added,
		}))
		if err != nil {
			log.Warnf("failed to publish import notification: %v", err)
		}
	}
	log.Infof("Import via %s strategy: %d entries detected, %d records added", summary.Strategy, summary.Detected, summary.Added)
	return summary, nil
}
