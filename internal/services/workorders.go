package services

import (
	"context"
	"fmt"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

const workOrdersEndpoint = "/api/ev1/workorders"

// WorkOrderService reads and mutates work orders on the upstream API.
type WorkOrderService struct {
	api    *fexa.Client
	logger *zap.Logger
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(api *fexa.Client, logger *zap.Logger) *WorkOrderService {
	return &WorkOrderService{api: api, logger: logger}
}

// GetWorkOrders fetches one page of work orders.
func (s *WorkOrderService) GetWorkOrders(ctx context.Context, params fexa.QueryParameters) (models.WorkOrdersResponse, error) {
	s.logger.Debug("Fetching work orders", zap.Int("start", params.Start), zap.Int("limit", params.Limit))
	return fexa.Get[models.WorkOrdersResponse](ctx, s.api, workOrdersEndpoint+"?"+params.Encode())
}

// GetWorkOrder fetches a single work order by id.
func (s *WorkOrderService) GetWorkOrder(ctx context.Context, id int) (*models.WorkOrder, error) {
	resp, err := fexa.Get[models.SingleWorkOrderResponse](ctx, s.api, fmt.Sprintf("%s/%d", workOrdersEndpoint, id))
	if err != nil {
		return nil, err
	}
	if resp.WorkOrder == nil {
		return nil, errors.NotFound(fmt.Sprintf("work order %d not found", id), "", "")
	}
	return resp.WorkOrder, nil
}

// GetWorkOrdersByStatus fetches one page of work orders in a given status.
func (s *WorkOrderService) GetWorkOrdersByStatus(ctx context.Context, status string, params fexa.QueryParameters) (models.WorkOrdersResponse, error) {
	params.Filters = fexa.NewFilterBuilder().
		Where("workorders.status", status).
		Build()
	return s.GetWorkOrders(ctx, params)
}

// GetAllWorkOrdersByStatus fetches every work order in a given status,
// bounded by maxPages.
func (s *WorkOrderService) GetAllWorkOrdersByStatus(ctx context.Context, status string, maxPages int) ([]models.WorkOrder, error) {
	s.logger.Info("Fetching all work orders by status",
		zap.String("status", status), zap.Int("max_pages", maxPages))

	return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.WorkOrder], error) {
		resp, err := s.GetWorkOrdersByStatus(ctx, status, fexa.QueryParameters{Start: start, Limit: limit})
		if err != nil {
			return fexa.Page[models.WorkOrder]{}, err
		}
		total := 0
		if resp.Pagination != nil {
			total = resp.Pagination.Total
		}
		return fexa.Page[models.WorkOrder]{Items: resp.WorkOrders, Total: total}, nil
	}, 100, maxPages)
}

// CreateWorkOrder creates a new work order.
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, req models.CreateWorkOrderRequest) (*models.WorkOrder, error) {
	s.logger.Info("Creating work order", zap.Int("facility_id", req.WorkOrders.FacilityID))

	resp, err := fexa.Post[models.CreateWorkOrderResponse](ctx, s.api, workOrdersEndpoint, req)
	if err != nil {
		return nil, err
	}
	if resp.WorkOrders == nil {
		return nil, errors.Unknown("work order creation returned no record: "+resp.Message, 0, "", "")
	}
	return resp.WorkOrders, nil
}

// statusUpdateCandidates lists the endpoint/body shapes tried in order for a
// status update. The upstream does not document one; candidates with the
// status id in the path take no body.
func statusUpdateCandidates(workOrderID, statusID int, reason string) []struct {
	Path string
	Body any
} {
	body := map[string]any{
		"status_id": statusID,
		"reason":    reason,
	}
	return []struct {
		Path string
		Body any
	}{
		{fmt.Sprintf("%s/%d/update_status/%d", workOrdersEndpoint, workOrderID, statusID), nil},
		{fmt.Sprintf("%s/%d/update_status", workOrdersEndpoint, workOrderID), body},
		{fmt.Sprintf("%s/%d/status/%d", workOrdersEndpoint, workOrderID, statusID), nil},
		{fmt.Sprintf("%s/%d/status", workOrdersEndpoint, workOrderID), body},
		{fmt.Sprintf("/api/v2/workorders/%d/status/%d", workOrderID, statusID), nil},
		{fmt.Sprintf("%s/%d/transition", workOrdersEndpoint, workOrderID), body},
	}
}

// UpdateStatus walks the ordered candidate endpoints until one reports
// success. Responses are probed structurally for a success flag or routing
// error; an unrecognized response is verified by re-fetching the work order
// and comparing its status. When every candidate fails, the last failure is
// surfaced.
func (s *WorkOrderService) UpdateStatus(ctx context.Context, workOrderID, statusID int, reason string) (*models.WorkOrder, error) {
	s.logger.Info("Updating work order status",
		zap.Int("workorder_id", workOrderID), zap.Int("status_id", statusID))

	if _, err := s.GetWorkOrder(ctx, workOrderID); err != nil {
		return nil, err
	}

	var lastErr error
	for _, cand := range statusUpdateCandidates(workOrderID, statusID, reason) {
		s.logger.Debug("Trying status update endpoint", zap.String("path", cand.Path))

		probe, err := fexa.Put[models.StatusUpdateProbe](ctx, s.api, cand.Path, cand.Body)
		if err != nil {
			s.logger.Debug("Status update endpoint failed", zap.String("path", cand.Path), zap.Error(err))
			lastErr = err
			continue
		}

		switch probe.Outcome() {
		case models.StatusUpdateSuccess:
			s.logger.Info("Status update succeeded", zap.String("path", cand.Path))
			return s.GetWorkOrder(ctx, workOrderID)
		case models.StatusUpdateRoutingError:
			s.logger.Debug("Status update endpoint rejected request", zap.String("path", cand.Path))
			continue
		case models.StatusUpdateUnrecognized:
			// No success marker either way; trust only a re-fetch.
			updated, err := s.GetWorkOrder(ctx, workOrderID)
			if err != nil {
				lastErr = err
				continue
			}
			if updated.ObjectState != nil && updated.ObjectState.StatusID == statusID {
				s.logger.Info("Status update verified by re-fetch", zap.String("path", cand.Path))
				return updated, nil
			}
			s.logger.Warn("Endpoint accepted request but status unchanged", zap.String("path", cand.Path))
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.Unknown(
		fmt.Sprintf("unable to update work order %d status; the upstream API accepted no candidate endpoint. "+
			"Work order status may be derived from assignment statuses and not directly updatable", workOrderID),
		0, "", "")
}
