package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderStats renders a weekly summary as CSV: one row per day, one column
// per category that occurred during the week, plus a SUM column and a final
// Total row.
func (t *CsvStatsRendererImpl) RenderStats(summary WeeklySummary) (string, error) {
	header := make([]string, 0, len(summary.Categories)+2)
	header = append(header, "Date")
	for _, cs := range summary.Categories {
		header = append(header, string(cs.Category))
	}
	header = append(header, "SUM")

	data := make([][]string, 0, len(summary.Days)+2)
	data = append(data, header)

	for _, day := range summary.Days {
		row := make([]string, 0, len(header))
		row = append(row, day.Date)
		for _, cs := range summary.Categories {
			row = append(row, durationToString(day.ByCategory[cs.Category]))
		}
		row = append(row, durationToString(day.Total))
		data = append(data, row)
	}

	totals := make([]string, 0, len(header))
	totals = append(totals, "Total")
	for _, cs := range summary.Categories {
		totals = append(totals, durationToString(cs.Total))
	}
	totals = append(totals, durationToString(summary.Total))
	data = append(data, totals)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func durationToString(d time.Duration) string {
	minutes := int(d.Minutes())
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
