// internal/api/tomato_handlers.go
package api

import "net/http"

func (s *Server) handleTomatoState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.timer.Snapshot())
}

func (s *Server) handleTomatoStart(w http.ResponseWriter, r *http.Request) {
	if err := s.timer.Start(); err != nil {
		respondJSON(w, http.StatusConflict, map[string]string{"message": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, s.timer.Snapshot())
}

func (s *Server) handleTomatoPause(w http.ResponseWriter, r *http.Request) {
	s.timer.Pause()
	respondJSON(w, http.StatusOK, s.timer.Snapshot())
}

func (s *Server) handleTomatoResume(w http.ResponseWriter, r *http.Request) {
	s.timer.Resume()
	respondJSON(w, http.StatusOK, s.timer.Snapshot())
}

func (s *Server) handleTomatoStop(w http.ResponseWriter, r *http.Request) {
	s.timer.Stop()
	respondJSON(w, http.StatusOK, s.timer.Snapshot())
}
