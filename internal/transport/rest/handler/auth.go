package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"questhunt/internal/model"
	"questhunt/internal/service"
	"questhunt/internal/transport/rest/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// AdminSetupRequest is the request body for bootstrapping the admin account
type AdminSetupRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	SetupKey string `json:"setupKey"`
}

// AdminSetup handles POST /v1/auth/admin-setup
func (h *AuthHandler) AdminSetup(w http.ResponseWriter, r *http.Request) {
	var req AdminSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	resp, err := h.authSvc.AdminSetup(r.Context(), req.Name, req.Password, req.SetupKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// UpdateProfileRequest is the request body for the one-shot profile edit
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	AvatarColor string `json:"avatarColor"`
}

// UpdateProfile handles PUT /v1/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	resp, err := h.authSvc.UpdateProfile(r.Context(), teamID, req.Name, req.AvatarColor)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": message})
}

// writeServiceError maps service sentinels onto the HTTP error taxonomy.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "NotFound", err.Error())
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusBadRequest, "NotStarted", err.Error())
	case errors.Is(err, service.ErrAlreadySubmitted):
		writeError(w, http.StatusBadRequest, "AlreadySubmitted", err.Error())
	case errors.Is(err, service.ErrSubmissionBlocked):
		writeError(w, http.StatusForbidden, "SubmissionBlocked", err.Error())
	case errors.Is(err, service.ErrInvalidUpload):
		writeError(w, http.StatusBadRequest, "InvalidUpload", err.Error())
	case errors.Is(err, service.ErrInvalidScore):
		writeError(w, http.StatusBadRequest, "InvalidScore", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrProfileLocked):
		writeError(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Internal", "internal server error")
	}
}
