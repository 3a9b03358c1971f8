// internal/api/team_handlers.go
package api

import (
	"net/http"

	"github.com/focusdeck/focusdeck/internal/models"
)

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if err := s.controller.LoadTeams(r.Context()); err != nil {
			respondError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, s.controller.Teams())
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.controller.CreateTeam(r.Context(), body.Name, body.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.controller.UpdateTeamInfo(r.Context(), pathInt(r, "id"), body.Name, body.Description); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDissolveTeam(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.DissolveTeam(r.Context(), pathInt(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRequestJoin(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.RequestJoin(r.Context(), pathInt(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleApproveJoin(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.ApproveJoin(r.Context(), pathInt(r, "id"), pathInt(r, "uid")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	err := s.controller.AssignTask(r.Context(), pathInt(r, "id"), pathInt(r, "tid"), pathInt(r, "uid"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.RemoveMember(r.Context(), pathInt(r, "id"), pathInt(r, "uid")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role models.Role `json:"role"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	err := s.controller.UpdateMemberRole(r.Context(), pathInt(r, "id"), pathInt(r, "uid"), body.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleTeamProgress(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]float64{
		"progress": s.controller.TeamProgress(pathInt(r, "id")),
	})
}
