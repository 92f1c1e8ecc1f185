package importer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dersplan/dersplan/internal/rest"
	"github.com/dersplan/dersplan/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

type importRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy,omitempty"`
}

type importResponse struct {
	Strategy string `json:"strategy"`
	Detected int    `json:"detected"`
	Added    int    `json:"added"`
}

// ImportText handles POST /api/import/text.
func (h *Handler) ImportText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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
	if req.Text == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Nothing to import",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	summary, err := h.service.ImportText(r.Context(), req.Text, req.Strategy)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoScheduleDetected):
			w.WriteHeader(http.StatusUnprocessableEntity)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "No schedule entries detected",
				Details: "The pasted text did not contain any recognizable day and time pairs",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		case errors.Is(err, schedule.ErrValidation):
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		default:
			log.Errorf("import failed: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(importResponse{
		Strategy: summary.Strategy,
		Detected: summary.Detected,
		Added:    summary.Added,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
