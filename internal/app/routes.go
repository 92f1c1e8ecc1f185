package app

import (
	"github.com/dersplan/dersplan/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Schedule events
	r.HandleFunc("/api/schedule/event", deps.ScheduleHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/schedule/event", deps.ScheduleHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/schedule/event/{eventId}", deps.ScheduleHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/schedule/event/{eventId}", deps.ScheduleHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/schedule/cleanup", deps.ScheduleHandler.Cleanup).Methods("POST")

	// Day view layout
	r.HandleFunc("/api/layout/day", deps.LayoutHandler.GetDayLayout).Queries("date", "{date}").Methods("GET")

	// Text import
	r.HandleFunc("/api/import/text", deps.ImporterHandler.ImportText).Methods("POST")

	// ICS export
	r.HandleFunc("/api/calendar/export.ics", deps.IcsHandler.Export).Queries("from", "{from}", "to", "{to}").Methods("GET")

	// Stats
	r.HandleFunc("/api/stats/weekly", deps.StatsHandler.GetStats).Queries("date", "{date}").Methods("GET")
}
