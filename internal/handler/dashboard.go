package handler

import (
	"net/http"

	"eventmanagement/internal/service"
)

// DashboardHandler holds the HTTP handler for dashboard stats.
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), principalFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
