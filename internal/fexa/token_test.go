package fexa_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fexa-gateway/internal/config"
	"fexa-gateway/internal/fexa"
	"fexa-gateway/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:            baseURL,
		ClientID:           "test-client",
		ClientSecret:       "test-secret",
		TokenEndpoint:      "/oauth/token",
		TokenRefreshBuffer: 300 * time.Second,
		RequestTimeout:     5 * time.Second,
	}
}

func tokenServer(t *testing.T, expiresIn int64, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "test-client", creds["client_id"])
		assert.Equal(t, "test-secret", creds["client_secret"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-abc",
			"token_type":   "Bearer",
			"expires_in":   expiresIn,
		})
	}))
}

func TestGetAccessToken_ReusesCachedToken(t *testing.T) {
	var requests atomic.Int64
	srv := tokenServer(t, 3600, &requests)
	defer srv.Close()

	tm := fexa.NewTokenManager(testConfig(srv.URL), nil, zap.NewNop())

	first, err := tm.GetAccessToken(context.Background())
	require.NoError(t, err)
	second, err := tm.GetAccessToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), requests.Load())
}

func TestGetAccessToken_RefreshesInsideBuffer(t *testing.T) {
	// expires_in below the refresh buffer, so every call re-acquires.
	var requests atomic.Int64
	srv := tokenServer(t, 200, &requests)
	defer srv.Close()

	tm := fexa.NewTokenManager(testConfig(srv.URL), nil, zap.NewNop())

	_, err := tm.GetAccessToken(context.Background())
	require.NoError(t, err)
	_, err = tm.GetAccessToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), requests.Load())
}

func TestGetAccessToken_ConcurrentCallersShareOneAcquisition(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		time.Sleep(50 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-abc",
			"expires_in":   3600,
		})
	}))
	defer srv.Close()

	tm := fexa.NewTokenManager(testConfig(srv.URL), nil, zap.NewNop())

	const callers = 20
	tokens := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := tm.GetAccessToken(context.Background())
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), requests.Load())
	for _, token := range tokens {
		assert.Equal(t, "token-abc", token)
	}
}

func TestGetAccessToken_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tm := fexa.NewTokenManager(testConfig(srv.URL), nil, zap.NewNop())

	_, err := tm.GetAccessToken(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.KindAuthentication, errors.KindOf(err))
}

func TestGetAccessToken_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"token_type": "Bearer", "expires_in": 3600})
	}))
	defer srv.Close()

	tm := fexa.NewTokenManager(testConfig(srv.URL), nil, zap.NewNop())

	_, err := tm.GetAccessToken(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.KindAuthentication, errors.KindOf(err))
}

func TestForceRefresh_UsesJWTExpiryWhenExpiresInAbsent(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": signed})
	}))
	defer srv.Close()

	tm := fexa.NewTokenManager(testConfig(srv.URL), nil, zap.NewNop())

	token, err := tm.ForceRefresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, signed, token.AccessToken)
	assert.True(t, token.ExpiresAt.Equal(exp))
}

func TestForceRefresh_ReplacesCachedToken(t *testing.T) {
	var requests atomic.Int64
	srv := tokenServer(t, 3600, &requests)
	defer srv.Close()

	tm := fexa.NewTokenManager(testConfig(srv.URL), nil, zap.NewNop())

	_, err := tm.GetAccessToken(context.Background())
	require.NoError(t, err)
	_, err = tm.ForceRefresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), requests.Load())
}

func TestGetAccessToken_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	tm := fexa.NewTokenManager(testConfig(srv.URL), nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := tm.GetAccessToken(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.KindNetwork, errors.KindOf(err))
}
