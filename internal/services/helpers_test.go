package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fexa-gateway/internal/config"
	"fexa-gateway/internal/fexa"

	"go.uber.org/zap"
)

// newTestAPI stands up a fake upstream that issues tokens on /oauth/token and
// hands every other request to handler, returning a client wired against it.
func newTestAPI(t *testing.T, handler http.HandlerFunc) *fexa.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "token-abc",
				"expires_in":   3600,
			})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		BaseURL:            srv.URL,
		ClientID:           "test-client",
		ClientSecret:       "test-secret",
		TokenEndpoint:      "/oauth/token",
		TokenRefreshBuffer: 300 * time.Second,
		RequestTimeout:     5 * time.Second,
	}
	tokens := fexa.NewTokenManager(cfg, nil, zap.NewNop())
	return fexa.NewClient(cfg, tokens, nil, zap.NewNop())
}
