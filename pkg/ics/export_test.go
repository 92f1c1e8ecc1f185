package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/dersplan/dersplan/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	t.Run("serializes events with their fields", func(t *testing.T) {
		events := []schedule.Event{
			{
				ID:        "evt-1",
				Date:      "2026-03-02",
				Title:     "COMP101 Intro",
				Location:  "A-101",
				StartTime: "10:00",
				EndTime:   "11:15",
				Category:  schedule.CategoryCourse,
			},
			{
				ID:        "evt-2",
				Date:      "2026-03-03",
				Title:     "Gym",
				StartTime: "18:00",
				EndTime:   "19:00",
				Category:  schedule.CategoryPersonal,
			},
		}

		out, err := Render(events, now)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
		assert.Contains(t, out, "METHOD:PUBLISH")
		assert.Contains(t, out, productId)
		assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
		assert.Contains(t, out, "UID:evt-1")
		assert.Contains(t, out, "SUMMARY:COMP101 Intro")
		assert.Contains(t, out, "LOCATION:A-101")
		assert.Contains(t, out, "DESCRIPTION:category: personal")
		assert.Contains(t, out, "END:VCALENDAR")
	})

	t.Run("omits location when empty", func(t *testing.T) {
		out, err := Render([]schedule.Event{{
			ID: "evt-3", Date: "2026-03-02", Title: "X",
			StartTime: "09:00", EndTime: "10:00", Category: schedule.CategoryCourse,
		}}, now)
		require.NoError(t, err)
		assert.NotContains(t, out, "LOCATION")
	})

	t.Run("skips records with malformed times", func(t *testing.T) {
		events := []schedule.Event{
			{ID: "good", Date: "2026-03-02", Title: "Keep", StartTime: "09:00", EndTime: "10:00", Category: schedule.CategoryCourse},
			{ID: "bad", Date: "2026-03-02", Title: "Drop", StartTime: "25:99", EndTime: "26:00", Category: schedule.CategoryCourse},
		}

		out, err := Render(events, now)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
		assert.Contains(t, out, "UID:good")
		assert.NotContains(t, out, "UID:bad")
	})

	t.Run("empty input yields an empty calendar", func(t *testing.T) {
		out, err := Render(nil, now)
		require.NoError(t, err)
		assert.NotContains(t, out, "BEGIN:VEVENT")
		assert.Contains(t, out, "BEGIN:VCALENDAR")
	})
}
