// Package handler contains the HTTP layer: request/response structs per
// operation, JSON parsing, and delegation to the service layer. Handlers
// never touch the store directly and never decide authorization — the
// RequireUser middleware resolves the session, the services apply policy.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/lessonhub/internal/service"
)

// AuthHandler manages profile creation and the current-user endpoint.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type createProfileRequest struct {
	SessionID string `json:"session_id"`
}

type createProfileResponse struct {
	Success      bool   `json:"success"`
	UserID       string `json:"user_id"`
	SessionToken string `json:"session_token"`
}

// HandleCreateProfile exchanges an external session id for a local profile
// and a stored session.
//
// HTTP: POST /api/auth/profile
// BODY: {"session_id": "..."}
//
// This is the only unauthenticated API endpoint — it is what makes a
// session usable in the first place.
func (h *AuthHandler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid profile JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	result, err := h.auth.CreateProfile(r.Context(), req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createProfileResponse{
		Success:      true,
		UserID:       result.UserID,
		SessionToken: result.SessionToken,
	})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/auth/me
// Auth: required
//
// The guard middleware already resolved the full user record; this handler
// only renders it.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}
