package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fexa-gateway/internal/config"
	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/handlers"
	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newUpstream stands up a fake Fexa API and returns a client against it.
func newUpstream(t *testing.T, handler http.HandlerFunc) *fexa.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			json.NewEncoder(w).Encode(map[string]any{"access_token": "token-abc", "expires_in": 3600})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		BaseURL:            srv.URL,
		ClientID:           "c",
		ClientSecret:       "s",
		TokenEndpoint:      "/oauth/token",
		TokenRefreshBuffer: 300 * time.Second,
		RequestTimeout:     5 * time.Second,
	}
	tokens := fexa.NewTokenManager(cfg, nil, zap.NewNop())
	return fexa.NewClient(cfg, tokens, nil, zap.NewNop())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWorkOrderHandler_GetRejectsBadID(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})
	h := handlers.NewWorkOrderHandler(services.NewWorkOrderService(api, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/workorders/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	h.HandleGet(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeError(t, rec).Error)
}

func TestWorkOrderHandler_UpstreamNotFoundMapsTo404(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := handlers.NewWorkOrderHandler(services.NewWorkOrderService(api, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/workorders/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	h.HandleGet(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)
}

func TestWorkOrderHandler_UpstreamRateLimitMapsTo429WithRetryAfter(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	h := handlers.NewWorkOrderHandler(services.NewWorkOrderService(api, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/workorders", nil)
	rec := httptest.NewRecorder()

	h.HandleList(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit", decodeError(t, rec).Error)
}

func TestWorkOrderHandler_ServerErrorsMapTo500(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	h := handlers.NewWorkOrderHandler(services.NewWorkOrderService(api, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/workorders", nil)
	rec := httptest.NewRecorder()

	h.HandleList(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server", decodeError(t, rec).Error)
}

func TestClientHandler_DirectoryServesCachedClients(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ClientsResponse{
			Clients: []models.Client{
				{ID: 1, Active: true, DefaultGeneralAddress: &models.Address{Company: "Acme"}},
				{ID: 2, DefaultGeneralAddress: &models.Address{Company: "Borealis"}},
			},
			Total: 2,
		})
	})
	clientService := services.NewClientService(api, zap.NewNop())
	cached := services.NewCachedClientService(clientService, time.Minute, zap.NewNop())
	h := handlers.NewClientHandler(clientService, cached, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleDirectory(rec, httptest.NewRequest(http.MethodGet, "/api/clients/directory", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var infos []models.ClientInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&infos))
	assert.Len(t, infos, 2)

	// Active filter narrows the same cached copy.
	rec = httptest.NewRecorder()
	h.HandleDirectory(rec, httptest.NewRequest(http.MethodGet, "/api/clients/directory?active=true", nil))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "Acme", infos[0].Name)
}

func TestClientHandler_SearchRequiresTerm(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})
	clientService := services.NewClientService(api, zap.NewNop())
	cached := services.NewCachedClientService(clientService, time.Minute, zap.NewNop())
	h := handlers.NewClientHandler(clientService, cached, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleSearch(rec, httptest.NewRequest(http.MethodGet, "/api/clients/search", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientHandler_LookupMissIs404(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ClientsResponse{})
	})
	clientService := services.NewClientService(api, zap.NewNop())
	cached := services.NewCachedClientService(clientService, time.Minute, zap.NewNop())
	h := handlers.NewClientHandler(clientService, cached, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleLookup(rec, httptest.NewRequest(http.MethodGet, "/api/clients/lookup?name=missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)
}

func TestVisitHandler_RejectsHalfOpenDateRange(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})
	h := handlers.NewVisitHandler(services.NewVisitService(api, "", zap.NewNop()), zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/visits?from=2026-05-01", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_UpstreamNotFoundMapsTo404(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.SingleUserResponse{})
	})
	h := handlers.NewUserHandler(services.NewUserService(api, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/users/9", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "9"})
	rec := httptest.NewRecorder()

	h.HandleGet(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)
}

func TestLocationHandler_ByClientServesFlattenedStores(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.LocationsResponse{
			Locations: []models.Location{
				{
					ID: 3, Name: "Store 3", Active: true, OccupiedBy: 42,
					EndUserCustomerRole: &models.OccupantRole{
						DefaultAddress: &models.Address{Company: "Acme"},
					},
				},
			},
			Total: 1,
		})
	})
	h := handlers.NewLocationHandler(services.NewLocationService(api, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/clients/42/locations", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()

	h.HandleByClient(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var infos []models.LocationInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "Acme", infos[0].ClientCompany)
}

func TestInvoiceHandler_ListRejectsNonNumericVendor(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})
	h := handlers.NewInvoiceHandler(services.NewInvoiceService(api, zap.NewNop()), zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/invoices?vendor=acme", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeError(t, rec).Error)
}

func TestInvoiceHandler_ByWorkOrderRejectsBadID(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})
	h := handlers.NewInvoiceHandler(services.NewInvoiceService(api, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/workorders/abc/invoices", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	h.HandleByWorkOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoteHandler_CreateRejectsEmptyNote(t *testing.T) {
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})
	h := handlers.NewNoteHandler(services.NewNoteService(api, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/workorders/7/notes", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
