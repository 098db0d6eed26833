package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NoteHandler serves notes attached to work orders.
type NoteHandler struct {
	notes  *services.NoteService
	logger *zap.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(notes *services.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger}
}

// HandleList handles GET /api/workorders/{id}/notes
// @Summary     List notes on a work order
// @Tags        notes
// @Produce     application/json
// @Param       id    path  int true  "Work order ID"
// @Param       start query int false "Offset of the first record"
// @Param       limit query int false "Page size (default 100)"
// @Success     200 {object} models.NotesResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/workorders/{id}/notes [get]
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "work order id must be a positive integer")
		return
	}
	resp, err := h.notes.GetNotesByWorkOrder(r.Context(), id, intQuery(r, "start", 0), intQuery(r, "limit", 100))
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// createNoteBody is the request body for HandleCreate.
type createNoteBody struct {
	Note       string `json:"note"`
	Visibility string `json:"visibility"`
}

// HandleCreate handles POST /api/workorders/{id}/notes
// @Summary     Add a note to a work order
// @Tags        notes
// @Accept      application/json
// @Produce     application/json
// @Param       id   path int            true "Work order ID"
// @Param       body body createNoteBody true "Note text"
// @Success     201 {object} models.Note
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/workorders/{id}/notes [post]
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "work order id must be a positive integer")
		return
	}

	var body createNoteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendValidationError(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Note) == "" {
		sendValidationError(w, "note text is required")
		return
	}

	note, err := h.notes.CreateNote(r.Context(), id, body.Note, body.Visibility)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusCreated, note)
}
