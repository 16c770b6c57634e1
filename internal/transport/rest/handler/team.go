package handler

import (
	"encoding/json"
	"net/http"

	"questhunt/internal/service"

	"github.com/gorilla/mux"
)

// TeamHandler handles admin team management endpoints
type TeamHandler struct {
	teamSvc *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamSvc *service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// List handles GET /v1/admin/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// CreateTeamRequest is the request body for creating a single team
type CreateTeamRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Create handles POST /v1/admin/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	team, err := h.teamSvc.Create(r.Context(), req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, team)
}

// BulkCreateRequest is the request body for generating teams in bulk
type BulkCreateRequest struct {
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

// BulkCreate handles POST /v1/admin/teams/bulk. Generated passwords are
// returned once in the response and never stored in plaintext.
func (h *TeamHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	teams, err := h.teamSvc.BulkCreate(r.Context(), req.Prefix, req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"teams": teams})
}

// Reshuffle handles PUT /v1/admin/teams/{id}/reshuffle
func (h *TeamHandler) Reshuffle(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["id"]

	team, err := h.teamSvc.Reshuffle(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}

// Delete handles DELETE /v1/admin/teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["id"]

	if err := h.teamSvc.Delete(r.Context(), teamID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
