package handlers

import (
	"net/http"
	"strconv"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// InvoiceHandler serves client invoice lookups.
type InvoiceHandler struct {
	invoices *services.InvoiceService
	logger   *zap.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoices *services.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, logger: logger}
}

// HandleList handles GET /api/invoices
// @Summary     List invoices, optionally scoped to a vendor
// @Tags        invoices
// @Produce     application/json
// @Param       vendor query int false "Only invoices billed by this vendor"
// @Param       start query int false "Offset of the first record"
// @Param       limit query int false "Page size (default 100)"
// @Success     200 {object} models.InvoicesResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/invoices [get]
func (h *InvoiceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	start := intQuery(r, "start", 0)
	limit := intQuery(r, "limit", 100)

	if vendor := r.URL.Query().Get("vendor"); vendor != "" {
		vendorID, err := strconv.Atoi(vendor)
		if err != nil || vendorID <= 0 {
			sendValidationError(w, "vendor must be a positive integer")
			return
		}
		resp, err := h.invoices.GetInvoicesByVendor(r.Context(), vendorID, start, limit)
		if err != nil {
			sendError(w, h.logger, err)
			return
		}
		sendJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := h.invoices.GetInvoices(r.Context(), fexa.QueryParameters{Start: start, Limit: limit})
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/invoices/{id}
// @Summary     Get an invoice
// @Tags        invoices
// @Produce     application/json
// @Param       id path int true "Invoice ID"
// @Success     200 {object} models.Invoice
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/invoices/{id} [get]
func (h *InvoiceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "invoice id must be a positive integer")
		return
	}
	invoice, err := h.invoices.GetInvoice(r.Context(), id)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, invoice)
}

// HandleByWorkOrder handles GET /api/workorders/{id}/invoices
// @Summary     List the invoices raised against a work order
// @Tags        invoices
// @Produce     application/json
// @Param       id path int true "Work order ID"
// @Param       start query int false "Offset of the first record"
// @Param       limit query int false "Page size (default 100)"
// @Success     200 {object} models.InvoicesResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/workorders/{id}/invoices [get]
func (h *InvoiceHandler) HandleByWorkOrder(w http.ResponseWriter, r *http.Request) {
	workOrderID, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "work order id must be a positive integer")
		return
	}
	resp, err := h.invoices.GetInvoicesByWorkOrder(r.Context(), workOrderID,
		intQuery(r, "start", 0), intQuery(r, "limit", 100))
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}
