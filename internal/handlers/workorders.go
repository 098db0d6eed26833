package handlers

import (
	"encoding/json"
	"net/http"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// WorkOrderHandler serves work order reads and mutations.
type WorkOrderHandler struct {
	workOrders *services.WorkOrderService
	logger     *zap.Logger
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(workOrders *services.WorkOrderService, logger *zap.Logger) *WorkOrderHandler {
	return &WorkOrderHandler{workOrders: workOrders, logger: logger}
}

// HandleList handles GET /api/workorders
// @Summary     List work orders
// @Description Returns one page of work orders. Pass status to filter.
// @Tags        workorders
// @Produce     application/json
// @Param       start  query int    false "Offset of the first record"
// @Param       limit  query int    false "Page size (default 100)"
// @Param       status query string false "Filter by status name"
// @Success     200 {object} models.WorkOrdersResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/workorders [get]
func (h *WorkOrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := fexa.QueryParameters{
		Start: intQuery(r, "start", 0),
		Limit: intQuery(r, "limit", 100),
	}

	var (
		resp models.WorkOrdersResponse
		err  error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		resp, err = h.workOrders.GetWorkOrdersByStatus(r.Context(), status, params)
	} else {
		resp, err = h.workOrders.GetWorkOrders(r.Context(), params)
	}
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/workorders/{id}
// @Summary     Get a work order
// @Tags        workorders
// @Produce     application/json
// @Param       id path int true "Work order ID"
// @Success     200 {object} models.WorkOrder
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/workorders/{id} [get]
func (h *WorkOrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "work order id must be a positive integer")
		return
	}
	wo, err := h.workOrders.GetWorkOrder(r.Context(), id)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, wo)
}

// HandleCreate handles POST /api/workorders
// @Summary     Create a work order
// @Tags        workorders
// @Accept      application/json
// @Produce     application/json
// @Param       body body models.CreateWorkOrderRequest true "Work order"
// @Success     201 {object} models.WorkOrder
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/workorders [post]
func (h *WorkOrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendValidationError(w, "invalid JSON body")
		return
	}
	wo, err := h.workOrders.CreateWorkOrder(r.Context(), req)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusCreated, wo)
}

// statusUpdateBody is the request body for HandleUpdateStatus.
type statusUpdateBody struct {
	StatusID int    `json:"status_id"`
	Reason   string `json:"reason"`
}

// HandleUpdateStatus handles PUT /api/workorders/{id}/status
// @Summary     Update a work order's status
// @Description Tries the known upstream status-update endpoints in order and
//              verifies the change by re-fetching the work order.
// @Tags        workorders
// @Accept      application/json
// @Produce     application/json
// @Param       id   path int              true "Work order ID"
// @Param       body body statusUpdateBody true "Target status"
// @Success     200 {object} models.WorkOrder
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/workorders/{id}/status [put]
func (h *WorkOrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "work order id must be a positive integer")
		return
	}

	var body statusUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendValidationError(w, "invalid JSON body")
		return
	}
	if body.StatusID <= 0 {
		sendValidationError(w, "status_id must be a positive integer")
		return
	}

	wo, err := h.workOrders.UpdateStatus(r.Context(), id, body.StatusID, body.Reason)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, wo)
}
