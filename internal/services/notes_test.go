package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetNotesByWorkOrder_FiltersOnNotable(t *testing.T) {
	var filters string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		filters = r.URL.Query().Get("filters")
		json.NewEncoder(w).Encode(models.NotesResponse{
			Notes: []models.Note{{ID: 1, Note: "on site"}},
		})
	})
	svc := services.NewNoteService(api, zap.NewNop())

	resp, err := svc.GetNotesByWorkOrder(context.Background(), 7, 0, 50)
	require.NoError(t, err)
	assert.Len(t, resp.Notes, 1)
	assert.JSONEq(t,
		`[{"property":"notes.notable_id","value":7},{"property":"notes.notable_type","value":"Workorders::Workorder"}]`,
		filters)
}

func TestCreateNote_WrapsPayloadAndUnwrapsResponse(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateNoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tech en route", req.Notes.Note)
		assert.Equal(t, 7, req.Notes.NotableID)
		assert.Equal(t, "Workorders::Workorder", req.Notes.NotableType)

		json.NewEncoder(w).Encode(map[string]any{
			"notes": models.Note{ID: 42, Note: req.Notes.Note},
		})
	})
	svc := services.NewNoteService(api, zap.NewNop())

	note, err := svc.CreateNote(context.Background(), 7, "tech en route", "public")
	require.NoError(t, err)
	assert.Equal(t, 42, note.ID)
}
