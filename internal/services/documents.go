package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

const documentsEndpoint = "/api/ev1/documents"

// attachableType is the polymorphic type tag for documents attached to
// work orders.
const attachableType = "Workorders::Workorder"

// DocumentService uploads file attachments to work orders. Uploads go over
// multipart form data rather than JSON, so this service builds its requests
// by hand instead of going through the generic pipeline.
type DocumentService struct {
	api    *fexa.Client
	logger *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(api *fexa.Client, logger *zap.Logger) *DocumentService {
	return &DocumentService{api: api, logger: logger}
}

// Upload attaches a file to a work order. The multipart field names follow
// the upstream's Rails-style nested parameter convention.
func (s *DocumentService) Upload(ctx context.Context, req models.UploadDocumentRequest) (*models.Document, error) {
	if req.WorkOrderID <= 0 {
		return nil, errors.Validation("work order id is required", "", nil)
	}
	if req.FileName == "" {
		return nil, errors.Validation("file name is required", "", nil)
	}
	if len(req.Content) == 0 {
		return nil, errors.Validation("file content is empty", "", nil)
	}

	s.logger.Info("Uploading document",
		zap.Int("workorder_id", req.WorkOrderID),
		zap.String("file_name", req.FileName),
		zap.Int("size", len(req.Content)))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"documents[document_type_id]", strconv.Itoa(req.DocumentTypeID)},
		{"documents[description]", req.Description},
		{"documents[object_documents][0][attachable_type]", attachableType},
		{"documents[object_documents][0][attachable_id]", strconv.Itoa(req.WorkOrderID)},
	}
	for _, f := range fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, errors.Serialization("failed to build multipart form", err)
		}
	}

	part, err := writer.CreateFormFile("documents[file]", req.FileName)
	if err != nil {
		return nil, errors.Serialization("failed to build multipart form", err)
	}
	if _, err := part.Write(req.Content); err != nil {
		return nil, errors.Serialization("failed to build multipart form", err)
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Serialization("failed to build multipart form", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.api.URL(documentsEndpoint), &buf)
	if err != nil {
		return nil, errors.Network("failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.api.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Network("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("Document upload failed",
			zap.Int("status", resp.StatusCode), zap.Int("workorder_id", req.WorkOrderID))
		return nil, errors.Server(
			fmt.Sprintf("document upload failed with status %d", resp.StatusCode),
			resp.StatusCode, string(body), resp.Header.Get("X-Request-Id"))
	}

	var envelope models.DocumentResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Serialization("failed to deserialize API response", err)
	}
	if envelope.Documents == nil {
		return nil, errors.Unknown("document upload returned no record: "+envelope.Message, resp.StatusCode, string(body), "")
	}

	s.logger.Info("Document uploaded", zap.Int("document_id", envelope.Documents.ID))
	return envelope.Documents, nil
}
