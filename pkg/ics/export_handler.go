package ics

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/dersplan/dersplan/internal/rest"
	"github.com/dersplan/dersplan/internal/utils"
	"github.com/dersplan/dersplan/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	schedule schedule.Service
	clock    utils.Clock
}

func NewHandler(scheduleService schedule.Service) *Handler {
	return &Handler{schedule: scheduleService, clock: &utils.SystemClock{}}
}

// Export handles GET /api/calendar/export.ics?from=&to= and streams the
// stored events of the range as an iCalendar file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	buckets, err := h.schedule.EventsForRange(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, schedule.ErrValidation) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date range",
				Details: "'from' and 'to' must be in YYYY-MM-DD format",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
				return
			}
			return
		}
		log.Errorf("failed to load events for export: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	events := make([]schedule.Event, 0)
	for _, date := range dates {
		events = append(events, buckets[date]...)
	}

	body, err := Render(events, h.clock.Now())
	if err != nil {
		log.Errorf("failed to render ICS: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="dersplan.ics"`)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Errorf("failed to write ICS response: %v", err)
	}
}
