package handlers

import (
	"io"
	"net/http"
	"strconv"

	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// maxUploadBytes caps document uploads at 25 MB.
const maxUploadBytes = 25 << 20

// DocumentHandler accepts file uploads and forwards them to the upstream.
type DocumentHandler struct {
	documents *services.DocumentService
	logger    *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *services.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, logger: logger}
}

// HandleUpload handles POST /api/workorders/{id}/documents
// @Summary     Attach a document to a work order
// @Tags        documents
// @Accept      multipart/form-data
// @Produce     application/json
// @Param       id               path     int    true  "Work order ID"
// @Param       file             formData file   true  "File to attach"
// @Param       document_type_id formData int    false "Document type id"
// @Param       description      formData string false "Description"
// @Success     201 {object} models.Document
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/workorders/{id}/documents [post]
func (h *DocumentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "work order id must be a positive integer")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		sendValidationError(w, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sendValidationError(w, "form field file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		sendValidationError(w, "failed to read uploaded file")
		return
	}

	req := models.UploadDocumentRequest{
		WorkOrderID:    id,
		DocumentTypeID: intForm(r, "document_type_id"),
		Description:    r.FormValue("description"),
		FileName:       header.Filename,
		Content:        content,
	}

	doc, err := h.documents.Upload(r.Context(), req)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusCreated, doc)
}

func intForm(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0
	}
	return n
}
