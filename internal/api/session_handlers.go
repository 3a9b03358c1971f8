// internal/api/session_handlers.go
package api

import (
	"net/http"

	"github.com/focusdeck/focusdeck/internal/gateway"
	"github.com/focusdeck/focusdeck/internal/models"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.users.Login(r.Context(), body.Email, body.Password); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.users.Profile())
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		User            models.User `json:"user"`
		Password        string      `json:"password"`
		ConfirmPassword string      `json:"confirmPassword"`
		Code            string      `json:"code"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.users.Register(r.Context(), body.User, body.Password, body.ConfirmPassword, body.Code); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.users.Profile())
}

func (s *Server) handleSendCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.users.SendCode(r.Context(), body.Email); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.users.ChangePassword(r.Context(), body.OldPassword, body.NewPassword, body.ConfirmPassword); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile := s.users.Profile()
	if profile == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "not logged in"})
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req gateway.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.users.UpdateProfile(r.Context(), req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.users.Profile())
}
