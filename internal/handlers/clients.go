package handlers

import (
	"net/http"
	"strconv"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ClientHandler serves client lookups from the cached client directory.
type ClientHandler struct {
	clients *services.ClientService
	cached  *services.CachedClientService
	logger  *zap.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients *services.ClientService, cached *services.CachedClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, cached: cached, logger: logger}
}

// HandleList handles GET /api/clients
// @Summary     List clients
// @Description Returns one page of clients straight from the upstream API.
// @Tags        clients
// @Produce     application/json
// @Param       start  query int false "Offset of the first record"
// @Param       limit  query int false "Page size (default 100)"
// @Success     200 {object} models.ClientsResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/clients [get]
func (h *ClientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := fexa.QueryParameters{
		Start: intQuery(r, "start", 0),
		Limit: intQuery(r, "limit", 100),
	}
	resp, err := h.clients.GetClients(r.Context(), params)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/clients/{id}
// @Summary     Get a client
// @Tags        clients
// @Produce     application/json
// @Param       id path int true "Client ID"
// @Success     200 {object} models.Client
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/clients/{id} [get]
func (h *ClientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "client id must be a positive integer")
		return
	}
	client, err := h.clients.GetClient(r.Context(), id)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, client)
}

// HandleDirectory handles GET /api/clients/directory
// @Summary     List the cached client directory
// @Description Serves the flattened client list from the in-memory cache.
//              Pass active=true to filter to active clients.
// @Tags        clients
// @Produce     application/json
// @Param       active query bool false "Only active clients"
// @Success     200 {array} models.ClientInfo
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/clients/directory [get]
func (h *ClientHandler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	var (
		infos []models.ClientInfo
		err   error
	)
	if r.URL.Query().Get("active") == "true" {
		infos, err = h.cached.GetActive(r.Context())
	} else {
		infos, err = h.cached.GetAll(r.Context())
	}
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, infos)
}

// HandleSearch handles GET /api/clients/search
// @Summary     Search cached clients
// @Description Case-insensitive substring match over name, DBA and IVR id.
// @Tags        clients
// @Produce     application/json
// @Param       q query string true "Search term"
// @Success     200 {array} models.ClientInfo
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/clients/search [get]
func (h *ClientHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		sendValidationError(w, "query parameter q is required")
		return
	}
	infos, err := h.cached.Search(r.Context(), term)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, infos)
}

// HandleLookup handles GET /api/clients/lookup
// @Summary     Look up one client by name or IVR id
// @Tags        clients
// @Produce     application/json
// @Param       name query string false "Exact name or DBA"
// @Param       ivr  query string false "IVR id"
// @Success     200 {object} models.ClientInfo
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/clients/lookup [get]
func (h *ClientHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	var (
		info *models.ClientInfo
		err  error
	)
	switch {
	case r.URL.Query().Get("name") != "":
		info, err = h.cached.GetByName(r.Context(), r.URL.Query().Get("name"))
	case r.URL.Query().Get("ivr") != "":
		info, err = h.cached.GetByIVRID(r.Context(), r.URL.Query().Get("ivr"))
	default:
		sendValidationError(w, "either name or ivr is required")
		return
	}
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	if info == nil {
		sendJSON(w, http.StatusNotFound, models.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "no matching client",
		})
		return
	}
	sendJSON(w, http.StatusOK, info)
}

// HandleCacheStatus handles GET /api/clients/cache
// @Summary     Report client cache status
// @Tags        clients
// @Produce     application/json
// @Success     200 {object} cache.Status
// @Router      /api/clients/cache [get]
func (h *ClientHandler) HandleCacheStatus(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, h.cached.CacheStatus())
}

// HandleCacheRefresh handles POST /api/clients/cache/refresh
// @Summary     Refresh the client cache
// @Description Kicks off a background reload; returns immediately.
// @Tags        clients
// @Produce     application/json
// @Success     202 {object} map[string]string
// @Router      /api/clients/cache/refresh [post]
func (h *ClientHandler) HandleCacheRefresh(w http.ResponseWriter, r *http.Request) {
	h.cached.RefreshInBackground()
	sendJSON(w, http.StatusAccepted, map[string]string{
		"status": "refresh started",
		"count":  strconv.Itoa(h.cached.CacheStatus().ItemCount),
	})
}
