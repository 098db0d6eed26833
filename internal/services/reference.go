package services

import (
	"context"
	"strings"
	"time"

	"fexa-gateway/internal/cache"
	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"

	"go.uber.org/zap"
)

const referenceDumpMaxPages = 10

// ReferenceService serves one slow-changing reference table (priorities,
// regions, and so on) from an in-memory cache. All lookups run over the
// cached copy; only a cache miss or an explicit refresh hits the upstream.
type ReferenceService[T any] struct {
	col    *cache.Collection[T]
	id     func(T) int
	name   func(T) string
	active func(T) bool
}

func newReferenceService[T any](name string, ttl time.Duration, load cache.Loader[T], id func(T) int, displayName func(T) string, active func(T) bool, logger *zap.Logger) *ReferenceService[T] {
	return &ReferenceService[T]{
		col:    cache.NewCollection(name, ttl, load, active, logger),
		id:     id,
		name:   displayName,
		active: active,
	}
}

// GetAll returns the full reference table, loading it on first use.
func (s *ReferenceService[T]) GetAll(ctx context.Context) ([]T, error) {
	return s.col.GetAll(ctx)
}

// GetActive returns only active entries.
func (s *ReferenceService[T]) GetActive(ctx context.Context) ([]T, error) {
	return s.col.Where(ctx, s.active)
}

// GetByID returns the entry with the given id, or nil.
func (s *ReferenceService[T]) GetByID(ctx context.Context, id int) (*T, error) {
	v, ok, err := s.col.Find(ctx, func(t T) bool { return s.id(t) == id })
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// GetByName returns the entry whose name matches, case-insensitively, or nil.
func (s *ReferenceService[T]) GetByName(ctx context.Context, name string) (*T, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	v, ok, err := s.col.Find(ctx, func(t T) bool { return strings.EqualFold(s.name(t), name) })
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// Refresh forces a reload from the upstream.
func (s *ReferenceService[T]) Refresh(ctx context.Context) ([]T, error) {
	return s.col.Refresh(ctx)
}

// RefreshInBackground kicks off a non-blocking reload.
func (s *ReferenceService[T]) RefreshInBackground() {
	s.col.RefreshInBackground()
}

// CacheStatus reports refresh bookkeeping for this table.
func (s *ReferenceService[T]) CacheStatus() cache.Status {
	return s.col.Status()
}

// NewPriorityService caches work order priorities.
func NewPriorityService(api *fexa.Client, ttl time.Duration, logger *zap.Logger) *ReferenceService[models.Priority] {
	load := func(ctx context.Context) ([]models.Priority, error) {
		return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.Priority], error) {
			params := fexa.QueryParameters{Start: start, Limit: limit}
			resp, err := fexa.Get[models.PrioritiesResponse](ctx, api, "/api/ev1/priorities?"+params.Encode())
			if err != nil {
				return fexa.Page[models.Priority]{}, err
			}
			return fexa.Page[models.Priority]{Items: resp.Priorities}, nil
		}, 100, referenceDumpMaxPages)
	}
	return newReferenceService("priorities", ttl, load,
		func(p models.Priority) int { return p.ID },
		func(p models.Priority) string { return p.Name },
		func(p models.Priority) bool { return p.Active },
		logger)
}

// NewSeverityService caches work order severities.
func NewSeverityService(api *fexa.Client, ttl time.Duration, logger *zap.Logger) *ReferenceService[models.Severity] {
	load := func(ctx context.Context) ([]models.Severity, error) {
		return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.Severity], error) {
			params := fexa.QueryParameters{Start: start, Limit: limit}
			resp, err := fexa.Get[models.SeveritiesResponse](ctx, api, "/api/ev1/severities?"+params.Encode())
			if err != nil {
				return fexa.Page[models.Severity]{}, err
			}
			total := 0
			if resp.Pagination != nil {
				total = resp.Pagination.Total
			}
			return fexa.Page[models.Severity]{Items: resp.Severities, Total: total}, nil
		}, 100, referenceDumpMaxPages)
	}
	return newReferenceService("severities", ttl, load,
		func(s models.Severity) int { return s.ID },
		func(s models.Severity) string { return s.Name },
		func(s models.Severity) bool { return s.Active },
		logger)
}

// NewRegionService caches regions.
func NewRegionService(api *fexa.Client, ttl time.Duration, logger *zap.Logger) *ReferenceService[models.Region] {
	load := func(ctx context.Context) ([]models.Region, error) {
		return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.Region], error) {
			params := fexa.QueryParameters{Start: start, Limit: limit}
			resp, err := fexa.Get[models.RegionsResponse](ctx, api, "/api/ev1/regions?"+params.Encode())
			if err != nil {
				return fexa.Page[models.Region]{}, err
			}
			total := 0
			if resp.Pagination != nil {
				total = resp.Pagination.Total
			}
			return fexa.Page[models.Region]{Items: resp.Regions, Total: total}, nil
		}, 100, referenceDumpMaxPages)
	}
	return newReferenceService("regions", ttl, load,
		func(r models.Region) int { return r.ID },
		func(r models.Region) string { return r.Name },
		func(r models.Region) bool { return r.Active },
		logger)
}

// NewDocumentTypeService caches document types.
func NewDocumentTypeService(api *fexa.Client, ttl time.Duration, logger *zap.Logger) *ReferenceService[models.DocumentType] {
	load := func(ctx context.Context) ([]models.DocumentType, error) {
		return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.DocumentType], error) {
			params := fexa.QueryParameters{Start: start, Limit: limit}
			resp, err := fexa.Get[models.DocumentTypesResponse](ctx, api, "/api/ev1/document_types?"+params.Encode())
			if err != nil {
				return fexa.Page[models.DocumentType]{}, err
			}
			return fexa.Page[models.DocumentType]{Items: resp.DocumentTypes}, nil
		}, 100, referenceDumpMaxPages)
	}
	return newReferenceService("document_types", ttl, load,
		func(d models.DocumentType) int { return d.ID },
		func(d models.DocumentType) string { return d.Name },
		func(d models.DocumentType) bool { return d.Active },
		logger)
}

// NewWorkOrderCategoryService caches work order categories. The display
// name rides under "category" upstream.
func NewWorkOrderCategoryService(api *fexa.Client, ttl time.Duration, logger *zap.Logger) *ReferenceService[models.WorkOrderCategory] {
	load := func(ctx context.Context) ([]models.WorkOrderCategory, error) {
		return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.WorkOrderCategory], error) {
			params := fexa.QueryParameters{Start: start, Limit: limit}
			resp, err := fexa.Get[models.WorkOrderCategoriesResponse](ctx, api, "/api/ev1/workorder_categories?"+params.Encode())
			if err != nil {
				return fexa.Page[models.WorkOrderCategory]{}, err
			}
			total := 0
			if resp.Pagination != nil {
				total = resp.Pagination.Total
			}
			return fexa.Page[models.WorkOrderCategory]{Items: resp.Categories, Total: total}, nil
		}, 100, referenceDumpMaxPages)
	}
	return newReferenceService("workorder_categories", ttl, load,
		func(c models.WorkOrderCategory) int { return c.ID },
		func(c models.WorkOrderCategory) string { return c.Category },
		func(c models.WorkOrderCategory) bool { return c.Active },
		logger)
}

// NewWorkOrderClassService caches work order classes.
func NewWorkOrderClassService(api *fexa.Client, ttl time.Duration, logger *zap.Logger) *ReferenceService[models.WorkOrderClass] {
	load := func(ctx context.Context) ([]models.WorkOrderClass, error) {
		return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.WorkOrderClass], error) {
			params := fexa.QueryParameters{Start: start, Limit: limit}
			resp, err := fexa.Get[models.WorkOrderClassesResponse](ctx, api, "/api/ev1/workorder_classes?"+params.Encode())
			if err != nil {
				return fexa.Page[models.WorkOrderClass]{}, err
			}
			total := 0
			if resp.Pagination != nil {
				total = resp.Pagination.Total
			}
			return fexa.Page[models.WorkOrderClass]{Items: resp.Classes, Total: total}, nil
		}, 100, referenceDumpMaxPages)
	}
	return newReferenceService("workorder_classes", ttl, load,
		func(c models.WorkOrderClass) int { return c.ID },
		func(c models.WorkOrderClass) string { return c.Name },
		func(c models.WorkOrderClass) bool { return c.Active },
		logger)
}
