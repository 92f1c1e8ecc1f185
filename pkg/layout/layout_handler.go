package layout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dersplan/dersplan/internal/rest"
	"github.com/dersplan/dersplan/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type BoxDTO struct {
	Event        schedule.EventDTO `json:"event"`
	Top          float64           `json:"top"`
	Height       float64           `json:"height"`
	Column       int               `json:"column"`
	TotalColumns int               `json:"totalColumns"`
	Left         float64           `json:"leftPercent"`
	Width        float64           `json:"widthPercent"`
}

type DayLayoutDTO struct {
	Date          string   `json:"date"`
	StartHour     int      `json:"startHour"`
	EndHour       int      `json:"endHour"`
	PixelsPerHour float64  `json:"pixelsPerHour"`
	Boxes         []BoxDTO `json:"boxes"`
}

type Handler struct {
	schedule schedule.Service
	cfg      Config
}

func NewHandler(scheduleService schedule.Service, cfg Config) *Handler {
	return &Handler{schedule: scheduleService, cfg: cfg}
}

// GetDayLayout handles GET /api/layout/day?date= and returns the stored
// events of that day with their computed geometry.
func (h *Handler) GetDayLayout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date := r.URL.Query().Get("date")
	events, err := h.schedule.EventsForDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrValidation) {
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
		log.Errorf("failed to load events for layout: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	boxes := PositionDay(events, h.cfg)

	response := DayLayoutDTO{
		Date:          date,
		StartHour:     h.cfg.StartHour,
		EndHour:       h.cfg.EndHour,
		PixelsPerHour: h.cfg.PixelsPerHour,
		Boxes:         make([]BoxDTO, 0, len(boxes)),
	}
	for _, box := range boxes {
		response.Boxes = append(response.Boxes, boxToDTO(box))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func boxToDTO(box Box) BoxDTO {
	return BoxDTO{
		Event: schedule.EventDTO{
			ID:        box.Event.ID,
			Date:      box.Event.Date,
			Title:     box.Event.Title,
			Location:  box.Event.Location,
			StartTime: box.Event.StartTime,
			EndTime:   box.Event.EndTime,
			Category:  string(box.Event.Category),
		},
		Top:          box.Top,
		Height:       box.Height,
		Column:       box.Column,
		TotalColumns: box.TotalColumns,
		Left:         box.Left,
		Width:        box.Width,
	}
}
