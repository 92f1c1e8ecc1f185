package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dersplan/dersplan/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	Location  string `json:"location,omitempty"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Category  string `json:"category"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// CreateEvent handles POST /api/schedule/event. An optional
// ?recurrence=weekly|daily|weekdays query expands the event over the
// configured horizon; without it a single record is written.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	event := dtoToEvent(dto)

	recurrence := r.URL.Query().Get("recurrence")
	if recurrence != "" {
		stored, err := h.service.CreateRecurring(r.Context(), event, RecurrenceMode(recurrence))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		dtos := make([]EventDTO, 0, len(stored))
		for _, e := range stored {
			dtos = append(dtos, eventToDTO(e))
		}
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(dtos); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	stored, err := h.service.CreateEvent(r.Context(), event)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetEvents handles GET /api/schedule/event with either ?date= for one day
// bucket or ?from=&to= for a range keyed by date.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if date := r.URL.Query().Get("date"); date != "" {
		events, err := h.service.EventsForDate(r.Context(), date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		dtos := make([]EventDTO, 0, len(events))
		for _, e := range events {
			dtos = append(dtos, eventToDTO(e))
		}
		if err := json.NewEncoder(w).Encode(dtos); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Missing date selection",
			Details: "Provide either 'date' or both 'from' and 'to' in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	buckets, err := h.service.EventsForRange(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response := make(map[string][]EventDTO, len(buckets))
	for date, events := range buckets {
		dtos := make([]EventDTO, 0, len(events))
		for _, e := range events {
			dtos = append(dtos, eventToDTO(e))
		}
		response[date] = dtos
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateEvent handles PUT /api/schedule/event/{eventId}. The update is a
// delete followed by a re-create; the response carries the new id.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	id := vars["eventId"]

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	updated, err := h.service.EditEvent(r.Context(), id, dtoToEvent(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(eventToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	if err := h.service.DeleteEvent(r.Context(), vars["eventId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cleanup handles POST /api/schedule/cleanup and reports how many malformed
// records were dropped.
func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	removed, err := h.service.CleanupMalformed(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	response := struct {
		Removed int `json:"removed"`
	}{Removed: removed}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrValidation):
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		log.Errorf("schedule handler failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		ID:        e.ID,
		Date:      e.Date,
		Title:     e.Title,
		Location:  e.Location,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Category:  string(e.Category),
	}
}

func dtoToEvent(dto EventDTO) Event {
	return Event{
		ID:        dto.ID,
		Date:      dto.Date,
		Title:     dto.Title,
		Location:  dto.Location,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Category:  Category(dto.Category),
	}
}
