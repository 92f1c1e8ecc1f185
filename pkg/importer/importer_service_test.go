package importer

import (
	"context"
	"testing"
	"time"

	"github.com/dersplan/dersplan/internal/utils"
	"github.com/dersplan/dersplan/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImporter(now time.Time) (*ServiceImpl, schedule.Service) {
	scheduleService := schedule.NewService(&schedule.StubRepository{}, schedule.RecurrenceConfig{Weeks: 16}, nil)
	service := NewService(scheduleService, testConfig(), "daytime", nil)
	service.clock = &utils.MockClock{FixedNow: now}
	return service, scheduleService
}

func TestImportText(t *testing.T) {
	ctx := context.Background()
	// A Thursday; the import anchors to the Monday of that week.
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.Local)

	t.Run("expands one entry over the weekly horizon", func(t *testing.T) {
		service, scheduleService := newTestImporter(now)

		summary, err := service.ImportText(ctx, "Pazartesi\n10:00 - 11:15\nCOMP101 Intro", "")

		require.NoError(t, err)
		assert.Equal(t, "daytime", summary.Strategy)
		assert.Equal(t, 1, summary.Detected)
		assert.Equal(t, 4, summary.Added)

		buckets, err := scheduleService.EventsForRange(ctx, "2026-03-02", "2026-03-29")
		require.NoError(t, err)
		require.Len(t, buckets, 4)
		for _, date := range []string{"2026-03-02", "2026-03-09", "2026-03-16", "2026-03-23"} {
			require.Len(t, buckets[date], 1, "date %s", date)
			event := buckets[date][0]
			assert.Equal(t, "COMP101 Intro", event.Title)
			assert.Equal(t, "10:00", event.StartTime)
			assert.Equal(t, "11:15", event.EndTime)
			assert.Equal(t, schedule.CategoryCourse, event.Category)
		}
	})

	t.Run("entries land on their weekday within the anchor week", func(t *testing.T) {
		service, scheduleService := newTestImporter(now)

		_, err := service.ImportText(ctx, "Cuma\n14:00 - 15:15\nPHYS110 Mechanics", "")
		require.NoError(t, err)

		events, err := scheduleService.EventsForDate(ctx, "2026-03-06")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "PHYS110 Mechanics", events[0].Title)
	})

	t.Run("importing the same paste twice duplicates every record", func(t *testing.T) {
		service, scheduleService := newTestImporter(now)
		text := "Pazartesi\n10:00 - 11:15\nCOMP101 Intro"

		_, err := service.ImportText(ctx, text, "")
		require.NoError(t, err)
		_, err = service.ImportText(ctx, text, "")
		require.NoError(t, err)

		events, err := scheduleService.EventsForDate(ctx, "2026-03-02")
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("no detection writes nothing", func(t *testing.T) {
		service, scheduleService := newTestImporter(now)

		_, err := service.ImportText(ctx, "sadece düz metin", "")

		assert.ErrorIs(t, err, ErrNoScheduleDetected)
		buckets, err := scheduleService.EventsForRange(ctx, "2026-01-01", "2026-12-31")
		require.NoError(t, err)
		assert.Empty(t, buckets)
	})

	t.Run("unknown strategy is a validation error", func(t *testing.T) {
		service, _ := newTestImporter(now)

		_, err := service.ImportText(ctx, "Pazartesi\n10:00 - 11:15", "regex")

		assert.ErrorIs(t, err, schedule.ErrValidation)
	})

	t.Run("explicit strategy selection", func(t *testing.T) {
		service, scheduleService := newTestImporter(now)

		summary, err := service.ImportText(ctx, "COMP101 Intro\nSalı\n09:00 - 10:15", "block")

		require.NoError(t, err)
		assert.Equal(t, "block", summary.Strategy)
		assert.Equal(t, 4, summary.Added)

		events, err := scheduleService.EventsForDate(ctx, "2026-03-03")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "COMP101 Intro", events[0].Title)
	})

	t.Run("invalid detected entries are skipped, valid ones kept", func(t *testing.T) {
		service, scheduleService := newTestImporter(now)

		// The second range is inverted and fails validation at write time.
		text := "Pazartesi\nCOMP101 Intro\n10:00 - 11:15\nMATH201 Calculus\n15:00 - 14:00"
		summary, err := service.ImportText(ctx, text, "")

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Detected)
		assert.Equal(t, 4, summary.Added)

		events, err := scheduleService.EventsForDate(ctx, "2026-03-02")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "COMP101 Intro", events[0].Title)
	})
}
