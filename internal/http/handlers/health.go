package handlers

import (
	"net/http"
	"time"
)

// Version is reported by the health endpoint.
var Version = "1.0.0"

// HealthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	})
}
