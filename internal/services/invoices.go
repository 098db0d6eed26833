package services

import (
	"context"
	"fmt"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

const invoicesEndpoint = "/api/ev1/client_invoices"

// InvoiceService reads client invoices from the upstream API. Work order and
// vendor scoping go through the filters array on the listing endpoint.
type InvoiceService struct {
	api    *fexa.Client
	logger *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(api *fexa.Client, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{api: api, logger: logger}
}

// GetInvoices fetches one page of invoices.
func (s *InvoiceService) GetInvoices(ctx context.Context, params fexa.QueryParameters) (models.InvoicesResponse, error) {
	s.logger.Debug("Fetching invoices", zap.Int("start", params.Start), zap.Int("limit", params.Limit))
	return fexa.Get[models.InvoicesResponse](ctx, s.api, invoicesEndpoint+"?"+params.Encode())
}

// GetInvoice fetches a single invoice by id.
func (s *InvoiceService) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	resp, err := fexa.Get[models.SingleInvoiceResponse](ctx, s.api, fmt.Sprintf("%s/%d", invoicesEndpoint, id))
	if err != nil {
		return nil, err
	}
	if resp.Invoice == nil {
		return nil, errors.NotFound(fmt.Sprintf("invoice %d not found", id), "", "")
	}
	return resp.Invoice, nil
}

// GetInvoicesByWorkOrder fetches one page of the invoices raised against the
// given work order.
func (s *InvoiceService) GetInvoicesByWorkOrder(ctx context.Context, workOrderID, start, limit int) (models.InvoicesResponse, error) {
	s.logger.Debug("Fetching invoices by work order", zap.Int("workorder_id", workOrderID))
	return s.GetInvoices(ctx, fexa.QueryParameters{
		Start:   start,
		Limit:   limit,
		Filters: fexa.NewFilterBuilder().Where("workorders.id", workOrderID).Build(),
	})
}

// GetInvoicesByWorkOrders fetches one page of the invoices raised against any
// of the given work orders.
func (s *InvoiceService) GetInvoicesByWorkOrders(ctx context.Context, workOrderIDs []int, start, limit int) (models.InvoicesResponse, error) {
	if len(workOrderIDs) == 0 {
		return models.InvoicesResponse{}, errors.Validation("at least one work order id is required", "", nil)
	}
	ids := make([]any, len(workOrderIDs))
	for i, id := range workOrderIDs {
		ids[i] = id
	}
	s.logger.Debug("Fetching invoices by work orders", zap.Int("count", len(workOrderIDs)))
	return s.GetInvoices(ctx, fexa.QueryParameters{
		Start:   start,
		Limit:   limit,
		Filters: fexa.NewFilterBuilder().WhereIn("workorders.id", ids...).Build(),
	})
}

// GetInvoicesByVendor fetches one page of the invoices billed by the given
// vendor.
func (s *InvoiceService) GetInvoicesByVendor(ctx context.Context, vendorID, start, limit int) (models.InvoicesResponse, error) {
	s.logger.Debug("Fetching invoices by vendor", zap.Int("vendor_id", vendorID))
	return s.GetInvoices(ctx, fexa.QueryParameters{
		Start:   start,
		Limit:   limit,
		Filters: fexa.NewFilterBuilder().Where("vendors.id", vendorID).Build(),
	})
}
