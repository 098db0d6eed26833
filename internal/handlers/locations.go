package handlers

import (
	"net/http"

	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// LocationHandler serves store location lookups.
type LocationHandler struct {
	locations *services.LocationService
	logger    *zap.Logger
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locations *services.LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{locations: locations, logger: logger}
}

// HandleList handles GET /api/locations
// @Summary     List locations
// @Tags        locations
// @Produce     application/json
// @Param       active query bool false "Only locations still marked active"
// @Param       start query int false "Offset of the first record"
// @Param       limit query int false "Page size (default 100)"
// @Success     200 {array} models.LocationInfo
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/locations [get]
func (h *LocationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	start := intQuery(r, "start", 0)
	limit := intQuery(r, "limit", 100)

	var err error
	var infos any
	if r.URL.Query().Get("active") == "true" {
		infos, err = h.locations.GetActiveLocations(r.Context(), start, limit)
	} else {
		infos, err = h.locations.GetLocations(r.Context(), start, limit)
	}
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, infos)
}

// HandleGet handles GET /api/locations/{id}
// @Summary     Get a location
// @Tags        locations
// @Produce     application/json
// @Param       id path int true "Location ID"
// @Success     200 {object} models.LocationInfo
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/locations/{id} [get]
func (h *LocationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "location id must be a positive integer")
		return
	}
	info, err := h.locations.GetLocation(r.Context(), id)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, info)
}

// HandleByClient handles GET /api/clients/{id}/locations
// @Summary     List the locations occupied by a client
// @Tags        locations
// @Produce     application/json
// @Param       id path int true "Client ID"
// @Param       start query int false "Offset of the first record"
// @Param       limit query int false "Page size (default 100)"
// @Success     200 {array} models.LocationInfo
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/clients/{id}/locations [get]
func (h *LocationHandler) HandleByClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "client id must be a positive integer")
		return
	}
	infos, err := h.locations.GetLocationsByClient(r.Context(), clientID,
		intQuery(r, "start", 0), intQuery(r, "limit", 100))
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, infos)
}
