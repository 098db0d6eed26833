package services

import (
	"context"
	"fmt"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

const usersEndpoint = "/api/users"

// UserService reads upstream user accounts.
type UserService struct {
	api    *fexa.Client
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(api *fexa.Client, logger *zap.Logger) *UserService {
	return &UserService{api: api, logger: logger}
}

// GetUsers fetches one page of users.
func (s *UserService) GetUsers(ctx context.Context, params fexa.QueryParameters) (models.UsersResponse, error) {
	s.logger.Debug("Fetching users", zap.Int("start", params.Start), zap.Int("limit", params.Limit))
	return fexa.Get[models.UsersResponse](ctx, s.api, usersEndpoint+"?"+params.Encode())
}

// GetUser fetches a single user by id.
func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	resp, err := fexa.Get[models.SingleUserResponse](ctx, s.api, fmt.Sprintf("%s/%d", usersEndpoint, id))
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.NotFound(fmt.Sprintf("user %d not found", id), "", "")
	}
	return resp.User, nil
}
