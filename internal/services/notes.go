package services

import (
	"context"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"

	"go.uber.org/zap"
)

const notesEndpoint = "/api/ev1/notes"

// workOrderNotableType is the polymorphic type tag the upstream uses to
// attach notes to work orders.
const workOrderNotableType = "Workorders::Workorder"

// NoteService reads and creates notes on work orders.
type NoteService struct {
	api    *fexa.Client
	logger *zap.Logger
}

// NewNoteService creates a new note service
func NewNoteService(api *fexa.Client, logger *zap.Logger) *NoteService {
	return &NoteService{api: api, logger: logger}
}

// GetNotesByWorkOrder fetches one page of notes attached to a work order.
func (s *NoteService) GetNotesByWorkOrder(ctx context.Context, workOrderID, start, limit int) (models.NotesResponse, error) {
	filters := fexa.NewFilterBuilder().
		Where("notes.notable_id", workOrderID).
		Where("notes.notable_type", workOrderNotableType).
		Build()

	params := fexa.QueryParameters{Start: start, Limit: limit, Filters: filters}
	s.logger.Debug("Fetching notes", zap.Int("workorder_id", workOrderID))

	return fexa.Get[models.NotesResponse](ctx, s.api, notesEndpoint+"?"+params.Encode())
}

// CreateNote attaches a note to a work order.
func (s *NoteService) CreateNote(ctx context.Context, workOrderID int, text, visibility string) (*models.Note, error) {
	s.logger.Info("Creating note", zap.Int("workorder_id", workOrderID))

	req := models.CreateNoteRequest{
		Notes: models.NoteData{
			Note:        text,
			NotableID:   workOrderID,
			NotableType: workOrderNotableType,
			Visibility:  visibility,
		},
	}

	resp, err := fexa.Post[struct {
		Notes *models.Note `json:"notes"`
	}](ctx, s.api, notesEndpoint, req)
	if err != nil {
		return nil, err
	}
	return resp.Notes, nil
}
