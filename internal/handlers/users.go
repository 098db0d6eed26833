package handlers

import (
	"net/http"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// UserHandler serves user account lookups.
type UserHandler struct {
	users  *services.UserService
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleList handles GET /api/users
// @Summary     List users
// @Tags        users
// @Produce     application/json
// @Param       start query int false "Offset of the first record"
// @Param       limit query int false "Page size (default 100)"
// @Success     200 {object} models.UsersResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/users [get]
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := fexa.QueryParameters{
		Start: intQuery(r, "start", 0),
		Limit: intQuery(r, "limit", 100),
	}
	resp, err := h.users.GetUsers(r.Context(), params)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/users/{id}
// @Summary     Get a user
// @Tags        users
// @Produce     application/json
// @Param       id path int true "User ID"
// @Success     200 {object} models.User
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/users/{id} [get]
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(mux.Vars(r), "id")
	if !ok {
		sendValidationError(w, "user id must be a positive integer")
		return
	}
	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}
