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

const transitionsEndpoint = "/api/ev1/users/list_transitions"

// transitionDumpMaxPages caps the transitions dump at 20 pages (2000
// records). The endpoint has no reliable total count, so the cap is the
// hard bound against a runaway loop.
const transitionDumpMaxPages = 20

// transitionCacheTTL is short relative to the reference tables; the
// transition list is bigger and refetching it is cheap enough.
const transitionCacheTTL = 15 * time.Minute

// TransitionService serves workflow transitions from an in-memory cache.
// The full dump is fetched page by page and all lookups run over the
// cached copy.
type TransitionService struct {
	col    *cache.Collection[models.WorkflowTransition]
	logger *zap.Logger
}

// NewTransitionService creates a new transition service
func NewTransitionService(api *fexa.Client, logger *zap.Logger) *TransitionService {
	load := func(ctx context.Context) ([]models.WorkflowTransition, error) {
		logger.Info("Fetching all workflow transitions")
		return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.WorkflowTransition], error) {
			params := fexa.QueryParameters{Start: start, Limit: limit}
			resp, err := fexa.Get[models.TransitionsResponse](ctx, api, transitionsEndpoint+"?"+params.Encode())
			if err != nil {
				return fexa.Page[models.WorkflowTransition]{}, err
			}
			return fexa.Page[models.WorkflowTransition]{Items: resp.Transitions, Total: resp.TotalCount}, nil
		}, 100, transitionDumpMaxPages)
	}

	col := cache.NewCollection("transitions", transitionCacheTTL, load, nil, logger)
	return &TransitionService{col: col, logger: logger}
}

// GetAll returns every workflow transition.
func (s *TransitionService) GetAll(ctx context.Context) ([]models.WorkflowTransition, error) {
	return s.col.GetAll(ctx)
}

// GetByObjectType returns transitions for one workflow object type,
// e.g. "Assignment" or "Workorder".
func (s *TransitionService) GetByObjectType(ctx context.Context, objectType string) ([]models.WorkflowTransition, error) {
	return s.col.Where(ctx, func(t models.WorkflowTransition) bool {
		return strings.EqualFold(t.WorkflowObjectType, objectType)
	})
}

// GetFromStatus returns transitions leaving the given status id.
func (s *TransitionService) GetFromStatus(ctx context.Context, statusID int) ([]models.WorkflowTransition, error) {
	return s.col.Where(ctx, func(t models.WorkflowTransition) bool {
		return t.FromStatusID == statusID
	})
}

// GetToStatus returns transitions entering the given status id.
func (s *TransitionService) GetToStatus(ctx context.Context, statusID int) ([]models.WorkflowTransition, error) {
	return s.col.Where(ctx, func(t models.WorkflowTransition) bool {
		return t.ToStatusID == statusID
	})
}

// FindByStatusNames returns transitions whose from/to status names match,
// case-insensitively. Empty arguments match anything.
func (s *TransitionService) FindByStatusNames(ctx context.Context, fromName, toName string) ([]models.WorkflowTransition, error) {
	return s.col.Where(ctx, func(t models.WorkflowTransition) bool {
		if fromName != "" && (t.FromStatus == nil || !strings.EqualFold(t.FromStatus.Name, fromName)) {
			return false
		}
		if toName != "" && (t.ToStatus == nil || !strings.EqualFold(t.ToStatus.Name, toName)) {
			return false
		}
		return true
	})
}

// Refresh forces a reload of the transition cache.
func (s *TransitionService) Refresh(ctx context.Context) ([]models.WorkflowTransition, error) {
	return s.col.Refresh(ctx)
}

// CacheStatus reports refresh bookkeeping for the transition cache.
func (s *TransitionService) CacheStatus() cache.Status {
	return s.col.Status()
}
