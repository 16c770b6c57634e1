package handler

import (
	"encoding/json"
	"net/http"

	"questhunt/internal/model"
	"questhunt/internal/service"
	"questhunt/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// TaskHandler handles task endpoints
type TaskHandler struct {
	taskSvc       *service.TaskService
	submissionSvc *service.SubmissionService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskSvc *service.TaskService, submissionSvc *service.SubmissionService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc, submissionSvc: submissionSvc}
}

// List handles GET /v1/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())

	items, err := h.taskSvc.ListForTeam(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": items})
}

// Get handles GET /v1/tasks/{id}. Reading a task never starts its timer;
// hints and location are included only once their reveal delays have passed.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]
	teamID := middleware.GetTeamID(r.Context())

	view, sub, err := h.submissionSvc.VisibleTask(r.Context(), teamID, taskID, middleware.IsAdmin(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]interface{}{"task": view}
	if sub != nil {
		resp["submission"] = sub.View()
	} else {
		resp["submission"] = nil
	}
	writeJSON(w, http.StatusOK, resp)
}

// Start handles POST /v1/tasks/{id}/start
func (h *TaskHandler) Start(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]
	teamID := middleware.GetTeamID(r.Context())

	sub, err := h.submissionSvc.Start(r.Context(), teamID, taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submission": sub.View()})
}

// AdminList handles GET /v1/admin/tasks
func (h *TaskHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskSvc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// Create handles POST /v1/admin/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	created, err := h.taskSvc.Create(r.Context(), &task)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /v1/admin/tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	var update model.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	task, err := h.taskSvc.Update(r.Context(), taskID, &update)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /v1/admin/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	if err := h.taskSvc.Delete(r.Context(), taskID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
