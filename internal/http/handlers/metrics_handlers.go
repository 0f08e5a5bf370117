package handlers

import (
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for the inventory
// @Tags metrics
// @Produce json
// @Success 200 {object} service.Metrics
// @Failure 500 {object} ErrorResponse
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := inventory.DashboardMetrics(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to fetch metrics", "error", err)
		writeError(w, r, http.StatusInternalServerError, "Failed to fetch metrics.")
		return
	}
	respond(w, r, http.StatusOK, m)
}
