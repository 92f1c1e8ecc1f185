package stats

import (
	"time"

	"github.com/dersplan/dersplan/pkg/schedule"
)

// categoryOrder fixes the column order in summaries and CSV output.
var categoryOrder = []schedule.Category{
	schedule.CategoryCourse,
	schedule.CategoryPersonal,
	schedule.CategoryFinance,
	schedule.CategorySpecial,
}

type CategoryStats struct {
	Category schedule.Category
	Total    time.Duration
	Events   int
}

type DailyStats struct {
	Date       string
	Total      time.Duration
	ByCategory map[schedule.Category]time.Duration
}

// WeeklySummary aggregates the scheduled time of one week, per day and per
// category.
type WeeklySummary struct {
	WeekStart  string
	WeekEnd    string
	Days       []DailyStats
	Categories []CategoryStats
	Total      time.Duration
}
