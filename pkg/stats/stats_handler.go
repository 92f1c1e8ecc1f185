package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dersplan/dersplan/internal/rest"
	"github.com/dersplan/dersplan/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type DailyStatsDTO struct {
	Date       string            `json:"date"`
	Total      int               `json:"totalMinutes"`
	ByCategory map[string]int    `json:"byCategoryMinutes"`
}

type CategoryStatsDTO struct {
	Category string `json:"category"`
	Total    int    `json:"totalMinutes"`
	Events   int    `json:"events"`
}

type WeeklySummaryDTO struct {
	WeekStart  string             `json:"weekStart"`
	WeekEnd    string             `json:"weekEnd"`
	Days       []DailyStatsDTO    `json:"days"`
	Categories []CategoryStatsDTO `json:"categories"`
	Total      int                `json:"totalMinutes"`
}

type StatsHandler struct {
	statsService StatsService
	csvRenderer  *CsvStatsRendererImpl
}

func NewStatsHandler(statsService StatsService, csvRenderer *CsvStatsRendererImpl) *StatsHandler {
	return &StatsHandler{statsService, csvRenderer}
}

// GetStats handles GET /api/stats/weekly?date=. With "Accept: text/csv" the
// summary is rendered as CSV, otherwise as JSON.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	summary, err := h.statsService.GetWeeklyStats(r.Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrValidation) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "'date' must be in YYYY-MM-DD format",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
				return
			}
			return
		}
		log.Errorf("failed to compute weekly stats: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		body, err := h.csvRenderer.RenderStats(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		if _, err := w.Write([]byte(body)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func summaryToDTO(summary WeeklySummary) WeeklySummaryDTO {
	dto := WeeklySummaryDTO{
		WeekStart:  summary.WeekStart,
		WeekEnd:    summary.WeekEnd,
		Days:       make([]DailyStatsDTO, 0, len(summary.Days)),
		Categories: make([]CategoryStatsDTO, 0, len(summary.Categories)),
		Total:      minutes(summary.Total),
	}
	for _, day := range summary.Days {
		dayDTO := DailyStatsDTO{
			Date:       day.Date,
			Total:      minutes(day.Total),
			ByCategory: make(map[string]int, len(day.ByCategory)),
		}
		for category, duration := range day.ByCategory {
			dayDTO.ByCategory[string(category)] = minutes(duration)
		}
		dto.Days = append(dto.Days, dayDTO)
	}
	for _, cs := range summary.Categories {
		dto.Categories = append(dto.Categories, CategoryStatsDTO{
			Category: string(cs.Category),
			Total:    minutes(cs.Total),
			Events:   cs.Events,
		})
	}
	return dto
}

func minutes(d time.Duration) int {
	return int(d.Minutes())
}
