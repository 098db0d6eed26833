package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"
	"fexa-gateway/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetLocationsByClient_FiltersOnOccupant(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ev1/stores", r.URL.Path)
		assert.JSONEq(t, `[{"property":"occupied_by","value":42}]`, r.URL.Query().Get("filters"))
		json.NewEncoder(w).Encode(models.LocationsResponse{
			Locations: []models.Location{
				{
					ID:         7,
					Name:       "Store 7",
					Active:     true,
					OccupiedBy: 42,
					EndUserCustomerRole: &models.OccupantRole{
						DefaultAddress: &models.Address{Company: "Acme"},
					},
					StoreAddress: &models.StoreAddress{
						City: "Denver", State: "CO", Latitude: "39.7", Longitude: "-104.9",
					},
				},
			},
			Total: 1,
		})
	})
	svc := services.NewLocationService(api, zap.NewNop())

	infos, err := svc.GetLocationsByClient(context.Background(), 42, 0, 100)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "Acme", infos[0].ClientCompany)
	assert.Equal(t, "Denver", infos[0].City)
	assert.Equal(t, "39.7", infos[0].Latitude)
}

func TestGetActiveLocations_FiltersOnActiveFlag(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.JSONEq(t, `[{"property":"active","value":true}]`, r.URL.Query().Get("filters"))
		json.NewEncoder(w).Encode(models.LocationsResponse{
			Locations: []models.Location{{ID: 1, Active: true}},
		})
	})
	svc := services.NewLocationService(api, zap.NewNop())

	infos, err := svc.GetActiveLocations(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.True(t, infos[0].Active)
}

func TestGetLocation_SingleRidesUnderStoresKey(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ev1/stores/7", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"stores": map[string]any{"id": 7, "name": "Store 7", "facility_code": "S-007"},
		})
	})
	svc := services.NewLocationService(api, zap.NewNop())

	info, err := svc.GetLocation(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, info.ID)
	assert.Equal(t, "S-007", info.FacilityCode)
}

func TestGetLocation_EmptyEnvelopeIsNotFound(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.SingleLocationResponse{})
	})
	svc := services.NewLocationService(api, zap.NewNop())

	_, err := svc.GetLocation(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestGetLocations_FlattensWithoutNestedBlocks(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("filters"))
		json.NewEncoder(w).Encode(models.LocationsResponse{
			Locations: []models.Location{{ID: 3, Name: "Bare"}},
		})
	})
	svc := services.NewLocationService(api, zap.NewNop())

	infos, err := svc.GetLocations(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "Bare", infos[0].Name)
	assert.Empty(t, infos[0].ClientCompany)
	assert.Empty(t, infos[0].City)
}
