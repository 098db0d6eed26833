package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

const dateTimeFormat = "2006-01-02 15:04:05"

// VisitFilter narrows a visit listing. The visits endpoint takes these as
// direct query parameters, not as a filters array.
type VisitFilter struct {
	WorkOrderID  int
	TechnicianID int
	ClientID     int
	LocationID   int
	Status       string
}

// VisitService reads technician visits from the upstream API. The endpoint
// path is configurable because it has moved between upstream API versions.
type VisitService struct {
	api      *fexa.Client
	endpoint string
	logger   *zap.Logger
}

// NewVisitService creates a visit service bound to the given endpoint path.
func NewVisitService(api *fexa.Client, endpoint string, logger *zap.Logger) *VisitService {
	if endpoint == "" {
		endpoint = "/api/ev1/visits"
	}
	logger.Info("Visit service initialized", zap.String("endpoint", endpoint))
	return &VisitService{api: api, endpoint: endpoint, logger: logger}
}

// GetVisits fetches one page of visits matching the filter.
func (s *VisitService) GetVisits(ctx context.Context, filter VisitFilter, start, limit int) (models.VisitsResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	values := url.Values{}
	values.Set("start", strconv.Itoa(start))
	values.Set("limit", strconv.Itoa(limit))
	if filter.WorkOrderID > 0 {
		values.Set("workorder_id", strconv.Itoa(filter.WorkOrderID))
	}
	if filter.TechnicianID > 0 {
		values.Set("technician_id", strconv.Itoa(filter.TechnicianID))
	}
	if filter.ClientID > 0 {
		values.Set("client_id", strconv.Itoa(filter.ClientID))
	}
	if filter.LocationID > 0 {
		values.Set("location_id", strconv.Itoa(filter.LocationID))
	}
	if filter.Status != "" {
		values.Set("status", filter.Status)
	}

	s.logger.Debug("Fetching visits", zap.String("query", values.Encode()))
	return fexa.Get[models.VisitsResponse](ctx, s.api, s.endpoint+"?"+values.Encode())
}

// GetVisit fetches a single visit by id.
func (s *VisitService) GetVisit(ctx context.Context, id int) (*models.Visit, error) {
	resp, err := fexa.Get[models.SingleVisitResponse](ctx, s.api, fmt.Sprintf("%s/%d", s.endpoint, id))
	if err != nil {
		return nil, err
	}
	if resp.Visit == nil {
		return nil, errors.NotFound(fmt.Sprintf("visit %d not found", id), "", "")
	}
	return resp.Visit, nil
}

// GetVisitsByDateRange fetches one page of visits whose start_date falls in
// [from, to], inclusive of both whole days. Date ranges go through the
// filters array rather than direct parameters.
func (s *VisitService) GetVisitsByDateRange(ctx context.Context, from, to time.Time, start, limit int) (models.VisitsResponse, error) {
	if to.Before(from) {
		return models.VisitsResponse{}, errors.Validation("end date must not be before start date", "", nil)
	}
	return s.getVisitsByDateField(ctx, "start_date", from, to, start, limit)
}

// GetVisitsByCheckInDate fetches one page of visits checked in on the given day.
func (s *VisitService) GetVisitsByCheckInDate(ctx context.Context, day time.Time, start, limit int) (models.VisitsResponse, error) {
	return s.getVisitsByDateField(ctx, "check_in_time", day, day, start, limit)
}

// GetVisitsByScheduledDate fetches one page of visits scheduled on the given day.
func (s *VisitService) GetVisitsByScheduledDate(ctx context.Context, day time.Time, start, limit int) (models.VisitsResponse, error) {
	return s.getVisitsByDateField(ctx, "start_date", day, day, start, limit)
}

func (s *VisitService) getVisitsByDateField(ctx context.Context, field string, from, to time.Time, start, limit int) (models.VisitsResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	// Inclusive whole-day range: 00:00:00 on the first day through
	// 23:59:59 on the last.
	fromStr := from.Truncate(24 * time.Hour).Format(dateTimeFormat)
	toStr := to.Truncate(24*time.Hour).Add(24*time.Hour - time.Second).Format(dateTimeFormat)

	filters := fexa.NewFilterBuilder().
		WhereBetween(field, fromStr, toStr).
		Build()

	params := fexa.QueryParameters{Start: start, Limit: limit, Filters: filters}
	s.logger.Debug("Fetching visits by date",
		zap.String("field", field), zap.String("from", fromStr), zap.String("to", toStr))

	return fexa.Get[models.VisitsResponse](ctx, s.api, s.endpoint+"?"+params.Encode())
}

// GetAllVisits fetches every visit matching the filter, bounded by maxPages.
func (s *VisitService) GetAllVisits(ctx context.Context, filter VisitFilter, maxPages int) ([]models.Visit, error) {
	s.logger.Info("Fetching all visits", zap.Int("max_pages", maxPages))

	return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.Visit], error) {
		resp, err := s.GetVisits(ctx, filter, start, limit)
		if err != nil {
			return fexa.Page[models.Visit]{}, err
		}
		total := 0
		if resp.Pagination != nil {
			total = resp.Pagination.Total
		}
		return fexa.Page[models.Visit]{Items: resp.Visits, Total: total}, nil
	}, 100, maxPages)
}
