package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an upstream API failure.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindRateLimit      Kind = "rate_limit"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindServer         Kind = "server"
	KindNetwork        Kind = "network"
	KindSerialization  Kind = "serialization"
	KindUnknown        Kind = "unknown"
)

// APIError is the classified error returned by every upstream-facing call.
// It is created once per failed call and never retried by this layer.
type APIError struct {
	Kind       Kind
	Message    string
	StatusCode int    // upstream HTTP status, 0 when not applicable
	Body       string // raw upstream response body
	RequestID  string // upstream X-Request-Id, when present

	// RetryAfterSeconds carries the Retry-After hint on rate-limit errors
	// so callers can implement their own backoff.
	RetryAfterSeconds int

	// FieldErrors holds field -> messages parsed from a 400 response body.
	// Absent (nil) when the body could not be parsed.
	FieldErrors map[string][]string

	Err error // underlying cause (transport or decode error)
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Authentication builds a 401/403 or token-acquisition error.
func Authentication(message string, statusCode int, body string) *APIError {
	return &APIError{Kind: KindAuthentication, Message: message, StatusCode: statusCode, Body: body}
}

// RateLimit builds a 429 error with an optional Retry-After hint in seconds.
func RateLimit(message string, retryAfterSeconds int) *APIError {
	return &APIError{Kind: KindRateLimit, Message: message, StatusCode: http.StatusTooManyRequests, RetryAfterSeconds: retryAfterSeconds}
}

// Validation builds a 400 error with optional field-level messages.
func Validation(message string, body string, fieldErrors map[string][]string) *APIError {
	return &APIError{Kind: KindValidation, Message: message, StatusCode: http.StatusBadRequest, Body: body, FieldErrors: fieldErrors}
}

// NotFound builds a 404 error.
func NotFound(message string, body, requestID string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message, StatusCode: http.StatusNotFound, Body: body, RequestID: requestID}
}

// Server builds a 5xx error.
func Server(message string, statusCode int, body, requestID string) *APIError {
	return &APIError{Kind: KindServer, Message: message, StatusCode: statusCode, Body: body, RequestID: requestID}
}

// Network builds a transport-level error (DNS, connection, TLS, timeout).
func Network(message string, cause error) *APIError {
	return &APIError{Kind: KindNetwork, Message: message, Err: cause}
}

// Serialization builds an error for a 2xx body that did not match the
// expected shape. The original decode error is retained as cause.
func Serialization(message string, cause error) *APIError {
	return &APIError{Kind: KindSerialization, Message: message, Err: cause}
}

// Unknown builds a generic API error for unmapped statuses.
func Unknown(message string, statusCode int, body, requestID string) *APIError {
	return &APIError{Kind: KindUnknown, Message: message, StatusCode: statusCode, Body: body, RequestID: requestID}
}

// AsAPIError unwraps err to an *APIError, if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf reports the classification of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NotFound-classified API error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// HTTPStatus maps a classified error to the status the gateway surface
// returns: Authentication->401, Validation->400, NotFound->404,
// RateLimit->429, everything else->500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
