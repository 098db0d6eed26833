package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

// sendJSON writes data as a JSON response with the given status.
func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps an error onto the gateway's error body. Typed upstream
// errors keep their classification; anything else becomes a 500.
func sendError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := errors.HTTPStatus(err)
	body := models.ErrorResponse{
		Error:            "internal_error",
		ErrorDescription: "internal server error",
	}

	if apiErr, ok := errors.AsAPIError(err); ok {
		body.Error = string(apiErr.Kind)
		body.ErrorDescription = apiErr.Message
		if apiErr.Kind == errors.KindRateLimit && apiErr.RetryAfterSeconds > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(apiErr.RetryAfterSeconds))
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	} else {
		logger.Warn("Request rejected", zap.Error(err))
	}

	sendJSON(w, status, body)
}

// sendValidationError reports a bad request parameter.
func sendValidationError(w http.ResponseWriter, description string) {
	sendJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Error:            "validation",
		ErrorDescription: description,
	})
}

// intQuery parses an optional integer query parameter, returning def when
// absent or malformed.
func intQuery(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// pathInt parses a required integer path variable.
func pathInt(vars map[string]string, name string) (int, bool) {
	n, err := strconv.Atoi(vars[name])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
