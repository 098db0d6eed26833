package fexa

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"fexa-gateway/internal/config"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

// logBodyLimit caps response bodies in debug logs. Logging only; the full
// body is always returned to the caller.
const logBodyLimit = 500

// Client executes authenticated requests against the upstream Fexa API and
// classifies every failure into the pkg/errors taxonomy. It performs no
// automatic retries; retry policy belongs to callers.
type Client struct {
	httpClient *http.Client
	tokens     *TokenManager
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a new upstream API client
func NewClient(cfg *config.Config, tokens *TokenManager, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &Client{
		httpClient: httpClient,
		tokens:     tokens,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
	}
}

// Get issues an authenticated GET and decodes the JSON response into T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return execute[T](ctx, c, http.MethodGet, path, nil)
}

// Post issues an authenticated POST with an optional JSON payload.
func Post[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	return execute[T](ctx, c, http.MethodPost, path, payload)
}

// Put issues an authenticated PUT with an optional JSON payload.
func Put[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	return execute[T](ctx, c, http.MethodPut, path, payload)
}

// Patch issues an authenticated PATCH with an optional JSON payload.
func Patch[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	return execute[T](ctx, c, http.MethodPatch, path, payload)
}

// Delete issues an authenticated DELETE and decodes the JSON response into T.
func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return execute[T](ctx, c, http.MethodDelete, path, nil)
}

// URL joins a request path onto the configured base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// Do attaches a bearer token to req and sends it, returning the raw response
// for the caller to interpret. Used for non-JSON flows such as multipart
// document uploads.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	token, err := c.tokens.GetAccessToken(req.Context())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, errors.Network("request timeout or cancelled", err)
		}
		return nil, errors.Network("network error while calling API", err)
	}
	return resp, nil
}

func execute[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	var zero T

	var bodyReader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return zero, errors.Serialization("failed to encode request payload", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return zero, errors.Network("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.GetAccessToken(ctx)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("Sending upstream request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return zero, errors.Network("request timeout or cancelled", err)
		}
		return zero, errors.Network("network error while calling API", err)
	}
	defer resp.Body.Close()

	// Read the body as text first so both success parsing and error-body
	// inspection see the same bytes.
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, errors.Network("failed to read response body", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		c.logger.Debug("Upstream request succeeded",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(respBody), logBodyLimit)))

		if len(bytes.TrimSpace(respBody)) == 0 {
			return zero, nil
		}
		var result T
		if err := json.Unmarshal(respBody, &result); err != nil {
			c.logger.Error("Failed to decode upstream response", zap.Error(err))
			return zero, errors.Serialization("failed to deserialize API response", err)
		}
		return result, nil
	}

	c.logger.Warn("Upstream request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncate(string(respBody), logBodyLimit)))

	return zero, classify(resp, string(respBody))
}

// classify maps a non-2xx upstream response to a typed error. The table is
// fixed: 401/403 authentication, 429 rate limit, 400 validation, 404 not
// found, 500/502/503/504 server, anything else unknown.
func classify(resp *http.Response, body string) error {
	requestID := resp.Header.Get("X-Request-Id")

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		// 401/403 from Fexa usually means the bearer token expired, not
		// that the credentials are bad.
		return errors.Authentication("authentication failed, bearer token invalid or expired", resp.StatusCode, body)
	case http.StatusTooManyRequests:
		retryAfter := 0
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil {
				retryAfter = secs
			}
		}
		return errors.RateLimit("rate limit exceeded, retry later", retryAfter)
	case http.StatusBadRequest:
		return errors.Validation("validation failed, check request data", body, parseValidationErrors(body))
	case http.StatusNotFound:
		return errors.NotFound("resource not found", body, requestID)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return errors.Server("server error from upstream API", resp.StatusCode, body, requestID)
	default:
		return errors.Unknown("API request failed with status "+strconv.Itoa(resp.StatusCode), resp.StatusCode, body, requestID)
	}
}

// parseValidationErrors attempts to pull an "errors" field out of a 400
// body. Parse failures are swallowed; the field list is simply absent.
func parseValidationErrors(body string) map[string][]string {
	var envelope struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err != nil || len(envelope.Errors) == 0 {
		return nil
	}
	var fields map[string][]string
	if err := json.Unmarshal(envelope.Errors, &fields); err != nil {
		return nil
	}
	return fields
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
