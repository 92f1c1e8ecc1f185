package app

import (
	"database/sql"
	"time"

	"github.com/dersplan/dersplan/internal/cleanup"
	"github.com/dersplan/dersplan/internal/config"
	"github.com/dersplan/dersplan/internal/event_bus"
	"github.com/dersplan/dersplan/pkg/ics"
	"github.com/dersplan/dersplan/pkg/importer"
	"github.com/dersplan/dersplan/pkg/layout"
	"github.com/dersplan/dersplan/pkg/schedule"
	"github.com/dersplan/dersplan/pkg/stats"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	ScheduleRepo    schedule.Repository
	ScheduleService schedule.Service
	ScheduleHandler *schedule.Handler

	LayoutHandler *layout.Handler

	ImporterService importer.Service
	ImporterHandler *importer.Handler

	IcsHandler *ics.Handler

	StatsService     stats.StatsService
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	CleanupJob *cleanup.Job
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	subscribeLogging(deps.Bus)

	recurrence := schedule.RecurrenceConfig{
		Weeks:       cfg.Recurrence.Weeks,
		Days:        cfg.Recurrence.Days,
		WeekdayDays: cfg.Recurrence.WeekdayDays,
	}
	deps.ScheduleRepo = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, recurrence, deps.Bus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.LayoutHandler = layout.NewHandler(deps.ScheduleService, layout.Config{
		StartHour:     cfg.Calendar.StartHour,
		EndHour:       cfg.Calendar.EndHour,
		PixelsPerHour: cfg.Calendar.PixelsPerHour,
	})

	deps.ImporterService = importer.NewService(deps.ScheduleService, importerConfig(cfg), cfg.Importer.Strategy, deps.Bus)
	deps.ImporterHandler = importer.NewHandler(deps.ImporterService)

	deps.IcsHandler = ics.NewHandler(deps.ScheduleService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.ScheduleService)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	deps.CleanupJob = cleanup.NewJob(deps.ScheduleService, cfg.Cleanup.Schedule)

	return deps
}

func importerConfig(cfg config.Application) importer.Config {
	keywords := importer.DefaultDayKeywords()
	for keyword, weekday := range cfg.Importer.ExtraDayKeywords {
		// Config numbering is 1=Monday .. 7=Sunday.
		keywords[keyword] = time.Weekday(weekday % 7)
	}
	return importer.Config{
		DayKeywords:      keywords,
		DayLineMaxLength: cfg.Importer.DayLineMaxLength,
		RecurrenceWeeks:  cfg.Importer.RecurrenceWeeks,
		StartHour:        cfg.Calendar.StartHour,
		EndHour:          cfg.Calendar.EndHour,
	}
}

func subscribeLogging(bus *event_bus.EventBus) {
	bus.Subscribe(event_bus.ScheduleEventCreatedType, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.ScheduleEventCreated); ok {
			log.Debugf("Event created: %s on %s (%s)", data.Title, data.Date, data.ID)
		}
		return nil
	})
	bus.Subscribe(event_bus.ScheduleEventDeletedType, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.ScheduleEventDeleted); ok {
			log.Debugf("Event deleted: %s on %s", data.ID, data.Date)
		}
		return nil
	})
	bus.Subscribe(event_bus.ScheduleImportedType, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.ScheduleImported); ok {
			log.Infof("Import completed via %s: %d detected, %d added", data.Strategy, data.Detected, data.Added)
		}
		return nil
	})
}
