// internal/api/respond.go
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/focusdeck/focusdeck/internal/gateway"
	"github.com/focusdeck/focusdeck/internal/planner"
	"github.com/focusdeck/focusdeck/internal/session"
	"github.com/focusdeck/focusdeck/pkg/auth"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), map[string]string{"message": err.Error()})
}

// statusFor maps domain errors onto HTTP statuses. Backend errors pass
// their status through.
func statusFor(err error) int {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	switch {
	case errors.Is(err, planner.ErrNoUser), errors.Is(err, session.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, planner.ErrNotPermitted),
		errors.Is(err, planner.ErrAdminRequired),
		errors.Is(err, planner.ErrCannotTargetSelf):
		return http.StatusForbidden
	case errors.Is(err, planner.ErrTaskNotFound),
		errors.Is(err, planner.ErrTeamNotFound),
		errors.Is(err, planner.ErrAttachmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, planner.ErrAttachmentTooBig),
		errors.Is(err, planner.ErrAttachmentQuota):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, planner.ErrAlreadyMember),
		errors.Is(err, planner.ErrNotTeamMember),
		errors.Is(err, planner.ErrPasswordMismatch),
		errors.Is(err, planner.ErrPasswordUnchanged),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return false
	}
	return true
}
