package handlers

import (
	"net/http"

	"fexa-gateway/internal/cache"
	"fexa-gateway/internal/services"
)

// HealthHandler reports liveness and cache state.
type HealthHandler struct {
	clients     *services.CachedClientService
	transitions *services.TransitionService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(clients *services.CachedClientService, transitions *services.TransitionService) *HealthHandler {
	return &HealthHandler{clients: clients, transitions: transitions}
}

// HandleHealth handles GET /health
// @Summary     Health check endpoint
// @Description Returns OK if the service is running
// @Tags        health
// @Produce     text/plain
// @Success     200 {string} string "OK"
// @Router      /health [get]
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleStatus handles GET /status
// @Summary     Report cache status for the long-lived collections
// @Tags        health
// @Produce     application/json
// @Success     200 {object} map[string]cache.Status
// @Router      /status [get]
func (h *HealthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]cache.Status{
		"clients":     h.clients.CacheStatus(),
		"transitions": h.transitions.CacheStatus(),
	})
}
