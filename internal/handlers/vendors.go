package handlers

import (
	"net/http"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// VendorHandler serves vendor (subcontractor) lookups.
type VendorHandler struct {
	vendors *services.VendorService
	logger  *zap.Logger
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendors *services.VendorService, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{vendors: vendors, logger: logger}
}

// HandleList handles GET /api/vendors
// @Summary     List vendors
// @Tags        vendors
// @Produce     application/json
// @Param       start query int false "Offset of the first record"
// @Param       limit query int false "Page size (default 100)"
// @Success     200 {object} models.VendorsResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/vendors [get]
func (h *VendorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := fexa.QueryParameters{
		Start: intQuery(r, "start", 0),
		Limit: intQuery(r, "limit", 100),
	}
	resp, err := h.vendors.GetVendors(r.Context(), params)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/vendors/{id}
// @Summary     Get a vendor
// @Tags        vendors
// @Produce     application/json
// @Param       id path int true "Vendor ID"
// @Success     200 {object} models.Vendor
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/vendors/{id} [get]
func (h *VendorHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "vendor id must be a positive integer")
		return
	}
	vendor, err := h.vendors.GetVendor(r.Context(), id)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, vendor)
}
