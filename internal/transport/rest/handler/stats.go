package handler

import (
	"net/http"

	"questhunt/internal/service"
)

// StatsHandler handles the admin dashboard stats endpoint
type StatsHandler struct {
	statsSvc *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsSvc *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Overview handles GET /v1/admin/stats
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
