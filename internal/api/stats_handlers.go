// internal/api/stats_handlers.go
package api

import (
	"net/http"

	"github.com/focusdeck/focusdeck/internal/planner"
)

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" || s.controller.Stats() == nil {
		if err := s.controller.LoadStats(r.Context()); err != nil {
			respondError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, s.controller.Stats())
}

func (s *Server) handleUpdateStatsView(w http.ResponseWriter, r *http.Request) {
	var view planner.StatsView
	if !decodeBody(w, r, &view) {
		return
	}
	if err := s.controller.UpdateStatsView(r.Context(), view); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.controller.CurrentStatsView())
}

func (s *Server) handleSubmitFocus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DurationInSeconds int64 `json:"durationInSeconds"`
		TaskID            int   `json:"taskId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.controller.SubmitFocusData(r.Context(), body.DurationInSeconds, body.TaskID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
