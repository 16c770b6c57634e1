package handler

import (
	"encoding/json"
	"net/http"

	"questhunt/internal/model"
	"questhunt/internal/repository"
	"questhunt/internal/service"
	"questhunt/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// SubmissionHandler handles photo submission endpoints
type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSvc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Upload handles POST /v1/submissions/{taskId}/upload. The photo arrives as
// the multipart field "photo"; elapsed time is frozen server-side at this
// moment, never taken from the client.
func (h *SubmissionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]
	teamID := middleware.GetTeamID(r.Context())

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidUpload", "missing photo file")
		return
	}
	defer file.Close()

	sub, err := h.submissionSvc.UploadPhoto(r.Context(), teamID, taskID, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"submission": sub.View()})
}

// Feed handles GET /v1/submissions/feed
func (h *SubmissionHandler) Feed(w http.ResponseWriter, r *http.Request) {
	items, err := h.submissionSvc.Feed(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"feed": items})
}

// AdminList handles GET /v1/admin/submissions with optional status and
// taskId filters.
func (h *SubmissionHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	filter := repository.SubmissionFilter{
		Status: model.SubmissionStatus(r.URL.Query().Get("status")),
		TaskID: r.URL.Query().Get("taskId"),
		TeamID: r.URL.Query().Get("teamId"),
	}

	subs, err := h.submissionSvc.AdminList(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// BlockRequest is the request body for blocking a submission
type BlockRequest struct {
	Reason string `json:"reason"`
}

// Block handles PUT /v1/admin/submissions/{id}/block
func (h *SubmissionHandler) Block(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	adminID := middleware.GetTeamID(r.Context())

	var req BlockRequest
	if r.Body != nil {
		// body is optional; a missing reason gets a default
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	sub, err := h.submissionSvc.Block(r.Context(), adminID, id, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submission": sub.View()})
}

// Unblock handles PUT /v1/admin/submissions/{id}/unblock
func (h *SubmissionHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := h.submissionSvc.Unblock(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submission": sub.View()})
}

// ScoreRequest is the request body for awarding photo points
type ScoreRequest struct {
	Points int `json:"points"`
}

// Score handles PUT /v1/admin/submissions/{id}/score
func (h *SubmissionHandler) Score(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	adminID := middleware.GetTeamID(r.Context())

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	sub, err := h.submissionSvc.Score(r.Context(), adminID, id, req.Points)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submission": sub.View()})
}

// DeletePhoto handles DELETE /v1/admin/submissions/{id}. The attempt
// returns to in-progress with its original start time intact.
func (h *SubmissionHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := h.submissionSvc.DeletePhoto(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submission": sub.View()})
}
