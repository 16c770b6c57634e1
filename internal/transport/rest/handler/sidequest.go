package handler

import (
	"encoding/json"
	"net/http"

	"questhunt/internal/model"
	"questhunt/internal/service"
	"questhunt/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// SideQuestHandler handles side quest endpoints
type SideQuestHandler struct {
	questSvc *service.SideQuestService
}

// NewSideQuestHandler creates a new side quest handler
func NewSideQuestHandler(questSvc *service.SideQuestService) *SideQuestHandler {
	return &SideQuestHandler{questSvc: questSvc}
}

// List handles GET /v1/sidequests
func (h *SideQuestHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())

	items, summary, err := h.questSvc.ListForTeam(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sideQuests": items,
		"summary":    summary,
	})
}

// Gallery handles GET /v1/sidequests/gallery with an optional questId filter
func (h *SideQuestHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.questSvc.Gallery(r.Context(), r.URL.Query().Get("questId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"gallery": items})
}

// Submit handles POST /v1/sidequests/{id}/submit with a multipart "photo"
func (h *SideQuestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	questID := mux.Vars(r)["id"]
	teamID := middleware.GetTeamID(r.Context())

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidUpload", "missing photo file")
		return
	}
	defer file.Close()

	sub, err := h.questSvc.Submit(r.Context(), teamID, questID, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"submission": sub})
}

// AdminList handles GET /v1/admin/sidequests
func (h *SideQuestHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	quests, err := h.questSvc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pending, err := h.questSvc.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sideQuests": quests,
		"pending":    pending,
	})
}

// Create handles POST /v1/admin/sidequests
func (h *SideQuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var quest model.SideQuest
	if err := json.NewDecoder(r.Body).Decode(&quest); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	created, err := h.questSvc.Create(r.Context(), &quest)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateSideQuestRequest is the request body for editing a side quest
type UpdateSideQuestRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// Update handles PUT /v1/admin/sidequests/{id}
func (h *SideQuestHandler) Update(w http.ResponseWriter, r *http.Request) {
	questID := mux.Vars(r)["id"]

	var req UpdateSideQuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	quest, err := h.questSvc.Update(r.Context(), questID, req.Title, req.Description, req.IsActive)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quest)
}

// Delete handles DELETE /v1/admin/sidequests/{id}
func (h *SideQuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	questID := mux.Vars(r)["id"]

	if err := h.questSvc.Delete(r.Context(), questID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ReviewRequest is the request body for the admin verdict on a submission
type ReviewRequest struct {
	Approve bool `json:"approve"`
}

// Review handles PUT /v1/admin/sidequests/submissions/{id}/review
func (h *SideQuestHandler) Review(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	adminID := middleware.GetTeamID(r.Context())

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	sub, err := h.questSvc.Review(r.Context(), adminID, id, req.Approve)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submission": sub})
}
