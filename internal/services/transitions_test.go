package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"

	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func transitionFixture() []models.WorkflowTransition {
	return []models.WorkflowTransition{
		{
			Name:               "Schedule",
			FromStatusID:       1,
			ToStatusID:         2,
			WorkflowObjectType: "Assignment",
			FromStatus:         &models.WorkflowStatus{ID: 1, Name: "New"},
			ToStatus:           &models.WorkflowStatus{ID: 2, Name: "Scheduled"},
		},
		{
			Name:               "Complete",
			FromStatusID:       2,
			ToStatusID:         3,
			WorkflowObjectType: "Assignment",
			FromStatus:         &models.WorkflowStatus{ID: 2, Name: "Scheduled"},
			ToStatus:           &models.WorkflowStatus{ID: 3, Name: "Completed"},
		},
		{
			Name:               "Approve",
			FromStatusID:       5,
			ToStatusID:         6,
			WorkflowObjectType: "Workorder",
		},
	}
}

func newTransitionService(t *testing.T, requests *atomic.Int64) *services.TransitionService {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		assert.Equal(t, "/api/ev1/users/list_transitions", r.URL.Path)
		json.NewEncoder(w).Encode(models.TransitionsResponse{
			Transitions: transitionFixture(),
			TotalCount:  len(transitionFixture()),
			Success:     true,
		})
	})
	return services.NewTransitionService(api, zap.NewNop())
}

func TestTransitions_LookupsShareOneCachedLoad(t *testing.T) {
	var requests atomic.Int64
	svc := newTransitionService(t, &requests)
	ctx := context.Background()

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	assignments, err := svc.GetByObjectType(ctx, "assignment")
	require.NoError(t, err)
	assert.Len(t, assignments, 2)

	from, err := svc.GetFromStatus(ctx, 2)
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "Complete", from[0].Name)

	to, err := svc.GetToStatus(ctx, 2)
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "Schedule", to[0].Name)

	assert.Equal(t, int64(1), requests.Load())
}

func TestTransitions_FindByStatusNames(t *testing.T) {
	svc := newTransitionService(t, nil)
	ctx := context.Background()

	hits, err := svc.FindByStatusNames(ctx, "new", "scheduled")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Schedule", hits[0].Name)

	// Empty from matches anything with the given target.
	hits, err = svc.FindByStatusNames(ctx, "", "completed")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Complete", hits[0].Name)

	// Transitions without embedded status records never match name filters.
	hits, err = svc.FindByStatusNames(ctx, "anything", "")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestTransitions_DumpHonorsPageCap(t *testing.T) {
	var requests atomic.Int64
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		assert.Equal(t, int((requests.Load()-1)*100), start)

		// Always a full page with no usable total, forcing the cap to stop
		// the loop.
		json.NewEncoder(w).Encode(models.TransitionsResponse{
			Transitions: make([]models.WorkflowTransition, 100),
		})
	})
	svc := services.NewTransitionService(api, zap.NewNop())

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2000)
	assert.Equal(t, int64(20), requests.Load())
}
