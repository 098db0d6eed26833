package handlers

import (
	"net/http"
	"time"

	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const dateFormat = "2006-01-02"

// VisitHandler serves technician visit lookups.
type VisitHandler struct {
	visits *services.VisitService
	logger *zap.Logger
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visits *services.VisitService, logger *zap.Logger) *VisitHandler {
	return &VisitHandler{visits: visits, logger: logger}
}

// HandleList handles GET /api/visits
// @Summary     List visits
// @Description Returns one page of visits. Id filters go straight through as
//              query parameters; date filters accept YYYY-MM-DD.
// @Tags        visits
// @Produce     application/json
// @Param       start         query int    false "Offset of the first record"
// @Param       limit         query int    false "Page size (default 20)"
// @Param       workorder_id  query int    false "Filter by work order"
// @Param       technician_id query int    false "Filter by technician"
// @Param       client_id     query int    false "Filter by client"
// @Param       location_id   query int    false "Filter by location"
// @Param       status        query string false "Filter by status"
// @Param       from          query string false "Start date (YYYY-MM-DD)"
// @Param       to            query string false "End date (YYYY-MM-DD)"
// @Success     200 {object} models.VisitsResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/visits [get]
func (h *VisitHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	start := intQuery(r, "start", 0)
	limit := intQuery(r, "limit", 20)

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr != "" || toStr != "" {
		h.listByDateRange(w, r, fromStr, toStr, start, limit)
		return
	}

	filter := services.VisitFilter{
		WorkOrderID:  intQuery(r, "workorder_id", 0),
		TechnicianID: intQuery(r, "technician_id", 0),
		ClientID:     intQuery(r, "client_id", 0),
		LocationID:   intQuery(r, "location_id", 0),
		Status:       r.URL.Query().Get("status"),
	}

	resp, err := h.visits.GetVisits(r.Context(), filter, start, limit)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

func (h *VisitHandler) listByDateRange(w http.ResponseWriter, r *http.Request, fromStr, toStr string, start, limit int) {
	if fromStr == "" || toStr == "" {
		sendValidationError(w, "from and to must be supplied together")
		return
	}
	from, err := time.Parse(dateFormat, fromStr)
	if err != nil {
		sendValidationError(w, "from must be formatted YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateFormat, toStr)
	if err != nil {
		sendValidationError(w, "to must be formatted YYYY-MM-DD")
		return
	}

	resp, err := h.visits.GetVisitsByDateRange(r.Context(), from, to, start, limit)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/visits/{id}
// @Summary     Get a visit
// @Tags        visits
// @Produce     application/json
// @Param       id path int true "Visit ID"
// @Success     200 {object} models.Visit
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/visits/{id} [get]
func (h *VisitHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "visit id must be a positive integer")
		return
	}
	visit, err := h.visits.GetVisit(r.Context(), id)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, visit)
}

// HandleCheckIns handles GET /api/visits/check-ins
// @Summary     List visits checked in on a given day
// @Tags        visits
// @Produce     application/json
// @Param       date  query string true  "Day (YYYY-MM-DD)"
// @Param       start query int    false "Offset of the first record"
// @Param       limit query int    false "Page size (default 20)"
// @Success     200 {object} models.VisitsResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/visits/check-ins [get]
func (h *VisitHandler) HandleCheckIns(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse(dateFormat, r.URL.Query().Get("date"))
	if err != nil {
		sendValidationError(w, "date must be formatted YYYY-MM-DD")
		return
	}
	resp, err := h.visits.GetVisitsByCheckInDate(r.Context(), day, intQuery(r, "start", 0), intQuery(r, "limit", 20))
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// HandleSchedule handles GET /api/visits/schedule
// @Summary     List visits scheduled on a given day
// @Tags        visits
// @Produce     application/json
// @Param       date  query string true  "Day (YYYY-MM-DD)"
// @Param       start query int    false "Offset of the first record"
// @Param       limit query int    false "Page size (default 20)"
// @Success     200 {object} models.VisitsResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/visits/schedule [get]
func (h *VisitHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse(dateFormat, r.URL.Query().Get("date"))
	if err != nil {
		sendValidationError(w, "date must be formatted YYYY-MM-DD")
		return
	}
	resp, err := h.visits.GetVisitsByScheduledDate(r.Context(), day, intQuery(r, "start", 0), intQuery(r, "limit", 20))
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}
