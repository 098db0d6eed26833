package services

import (
	"context"
	"fmt"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

const clientsEndpoint = "/api/ev1/clients"

// ClientService reads client organizations from the upstream API.
type ClientService struct {
	api    *fexa.Client
	logger *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(api *fexa.Client, logger *zap.Logger) *ClientService {
	return &ClientService{api: api, logger: logger}
}

// GetClients fetches one page of clients.
func (s *ClientService) GetClients(ctx context.Context, params fexa.QueryParameters) (models.ClientsResponse, error) {
	s.logger.Debug("Fetching clients", zap.Int("start", params.Start), zap.Int("limit", params.Limit))
	return fexa.Get[models.ClientsResponse](ctx, s.api, clientsEndpoint+"?"+params.Encode())
}

// GetClient fetches a single client by id.
func (s *ClientService) GetClient(ctx context.Context, id int) (*models.Client, error) {
	resp, err := fexa.Get[models.ClientResponse](ctx, s.api, fmt.Sprintf("%s/%d", clientsEndpoint, id))
	if err != nil {
		return nil, err
	}
	if resp.Client == nil {
		return nil, errors.NotFound(fmt.Sprintf("client %d not found", id), "", "")
	}
	return resp.Client, nil
}

// GetAllClients fetches every client page by page, bounded by maxPages.
func (s *ClientService) GetAllClients(ctx context.Context, maxPages int) ([]models.Client, error) {
	s.logger.Info("Fetching all clients", zap.Int("max_pages", maxPages))

	return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.Client], error) {
		resp, err := s.GetClients(ctx, fexa.QueryParameters{Start: start, Limit: limit})
		if err != nil {
			return fexa.Page[models.Client]{}, err
		}
		return fexa.Page[models.Client]{Items: resp.Clients, Total: resp.Total}, nil
	}, 100, maxPages)
}
