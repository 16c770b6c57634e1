package handler

import (
	"encoding/json"
	"net/http"

	"questhunt/internal/model"
	"questhunt/internal/service"
)

// ConfigHandler handles game configuration endpoints
type ConfigHandler struct {
	configSvc *service.ConfigService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(configSvc *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configSvc: configSvc}
}

// Public handles GET /v1/config
func (h *ConfigHandler) Public(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configSvc.Public(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// Get handles GET /v1/admin/config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configSvc.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// Update handles PUT /v1/admin/config. Only allow-listed fields are
// applied; unknown fields in the body are ignored.
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update model.GameConfigUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid request body")
		return
	}

	cfg, err := h.configSvc.Update(r.Context(), &update)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}
