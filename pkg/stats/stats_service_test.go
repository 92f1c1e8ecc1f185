package stats

import (
	"context"
	"testing"
	"time"

	"github.com/dersplan/dersplan/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWeek(t *testing.T) StatsService {
	t.Helper()
	repo := &schedule.StubRepository{}
	scheduleService := schedule.NewService(repo, schedule.RecurrenceConfig{Weeks: 16}, nil)
	ctx := context.Background()

	for _, event := range []schedule.Event{
		{Date: "2026-03-02", Title: "COMP101", StartTime: "09:00", EndTime: "10:30", Category: schedule.CategoryCourse},
		{Date: "2026-03-02", Title: "Gym", StartTime: "18:00", EndTime: "19:00", Category: schedule.CategoryPersonal},
		{Date: "2026-03-04", Title: "MATH201", StartTime: "13:00", EndTime: "14:00", Category: schedule.CategoryCourse},
		// Previous week, must not count.
		{Date: "2026-02-27", Title: "Old", StartTime: "09:00", EndTime: "10:00", Category: schedule.CategoryCourse},
	} {
		_, err := scheduleService.CreateEvent(ctx, event)
		require.NoError(t, err)
	}

	return NewStatsServiceImpl(scheduleService)
}

func TestGetWeeklyStats(t *testing.T) {
	ctx := context.Background()
	service := seedWeek(t)

	summary, err := service.GetWeeklyStats(ctx, "2026-03-05")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", summary.WeekStart)
	assert.Equal(t, "2026-03-08", summary.WeekEnd)
	require.Len(t, summary.Days, 7)

	monday := summary.Days[0]
	assert.Equal(t, "2026-03-02", monday.Date)
	assert.Equal(t, 150*time.Minute, monday.Total)
	assert.Equal(t, 90*time.Minute, monday.ByCategory[schedule.CategoryCourse])
	assert.Equal(t, 60*time.Minute, monday.ByCategory[schedule.CategoryPersonal])

	wednesday := summary.Days[2]
	assert.Equal(t, 60*time.Minute, wednesday.Total)

	assert.Equal(t, 210*time.Minute, summary.Total)

	require.Len(t, summary.Categories, 2)
	assert.Equal(t, schedule.CategoryCourse, summary.Categories[0].Category)
	assert.Equal(t, 150*time.Minute, summary.Categories[0].Total)
	assert.Equal(t, 2, summary.Categories[0].Events)
	assert.Equal(t, schedule.CategoryPersonal, summary.Categories[1].Category)
}

func TestGetWeeklyStatsEmptyWeek(t *testing.T) {
	ctx := context.Background()
	service := seedWeek(t)

	summary, err := service.GetWeeklyStats(ctx, "2026-07-15")
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), summary.Total)
	assert.Empty(t, summary.Categories)
	require.Len(t, summary.Days, 7)
}

func TestGetWeeklyStatsInvalidDate(t *testing.T) {
	service := seedWeek(t)

	_, err := service.GetWeeklyStats(context.Background(), "next week")
	assert.ErrorIs(t, err, schedule.ErrValidation)
}
