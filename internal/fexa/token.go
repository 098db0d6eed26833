package fexa

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"fexa-gateway/internal/config"
	"fexa-gateway/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Token is a snapshot of the current access token handed to callers of
// ForceRefresh. The manager itself never exposes its internal state.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	IssuedAt    time.Time
}

// TokenManager acquires and caches an OAuth2 client-credentials bearer token
// for the upstream Fexa API. It holds at most one token and serializes all
// acquisition work behind a single mutex so concurrent callers converge on
// one token generation instead of each hitting the token endpoint.
type TokenManager struct {
	httpClient *http.Client
	cfg        *config.Config
	logger     *zap.Logger

	mu      sync.Mutex
	current *Token

	// now is swappable for tests.
	now func() time.Time
}

// NewTokenManager creates a new token manager
func NewTokenManager(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &TokenManager{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// GetAccessToken returns a bearer token valid for at least the configured
// refresh buffer, acquiring a new one from the token endpoint when needed.
func (tm *TokenManager) GetAccessToken(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.current != nil && tm.current.ExpiresAt.After(tm.now().Add(tm.cfg.TokenRefreshBuffer)) {
		return tm.current.AccessToken, nil
	}

	tm.logger.Debug("Acquiring new access token")
	token, err := tm.acquire(ctx)
	if err != nil {
		return "", err
	}
	tm.current = token
	return token.AccessToken, nil
}

// ForceRefresh discards the cached token and acquires a fresh one.
func (tm *TokenManager) ForceRefresh(ctx context.Context) (Token, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Debug("Forcing token refresh")
	token, err := tm.acquire(ctx)
	if err != nil {
		return Token{}, err
	}
	tm.current = token
	return *token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (tm *TokenManager) acquire(ctx context.Context) (*Token, error) {
	endpoint := tm.cfg.TokenEndpoint
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	// grant_type rides as a query parameter; the credentials go in a JSON
	// body, not a form body. This matches the Fexa token endpoint exactly.
	url := strings.TrimRight(tm.cfg.BaseURL, "/") + endpoint + "?grant_type=client_credentials"

	body, err := json.Marshal(map[string]string{
		"client_id":     tm.cfg.ClientID,
		"client_secret": tm.cfg.ClientSecret,
	})
	if err != nil {
		return nil, errors.Serialization("failed to encode token request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Network("failed to build token request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Network("token request timeout or cancelled", err)
		}
		return nil, errors.Network("network error while acquiring token", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Network("failed to read token response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tm.logger.Error("Token acquisition failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(respBody), logBodyLimit)))
		return nil, errors.Authentication("failed to acquire access token", resp.StatusCode, string(respBody))
	}

	var tr tokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return nil, errors.Authentication("invalid token response", resp.StatusCode, string(respBody))
	}
	if strings.TrimSpace(tr.AccessToken) == "" {
		return nil, errors.Authentication("invalid token response", resp.StatusCode, string(respBody))
	}

	issued := tm.now()
	expiresAt := issued.Add(time.Duration(tr.ExpiresIn) * time.Second)
	if tr.ExpiresIn <= 0 {
		// Some token responses omit expires_in. Fexa tokens are JWTs, so
		// fall back to the exp claim of the (unverified) token.
		if exp, ok := jwtExpiry(tr.AccessToken); ok {
			expiresAt = exp
		}
	}

	tm.logger.Debug("Acquired access token", zap.Time("expires_at", expiresAt))

	return &Token{
		AccessToken: tr.AccessToken,
		ExpiresAt:   expiresAt,
		IssuedAt:    issued,
	}, nil
}

// jwtExpiry extracts the exp claim from a JWT without verifying the
// signature. Verification is the upstream's job; we only need the deadline.
func jwtExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
