package services

import (
	"context"
	"fmt"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

const locationsEndpoint = "/api/ev1/stores"

// LocationService reads store locations from the upstream API and flattens
// them into the gateway's location projection. Client ownership is expressed
// upstream as an "occupied_by" filter on the stores listing.
type LocationService struct {
	api    *fexa.Client
	logger *zap.Logger
}

// NewLocationService creates a new location service
func NewLocationService(api *fexa.Client, logger *zap.Logger) *LocationService {
	return &LocationService{api: api, logger: logger}
}

// GetLocations fetches one page of locations.
func (s *LocationService) GetLocations(ctx context.Context, start, limit int) ([]models.LocationInfo, error) {
	s.logger.Debug("Fetching locations", zap.Int("start", start), zap.Int("limit", limit))
	params := fexa.QueryParameters{Start: start, Limit: limit}
	resp, err := fexa.Get[models.LocationsResponse](ctx, s.api, locationsEndpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return locationInfos(resp.Locations), nil
}

// GetActiveLocations fetches one page of locations still marked active.
func (s *LocationService) GetActiveLocations(ctx context.Context, start, limit int) ([]models.LocationInfo, error) {
	s.logger.Debug("Fetching active locations", zap.Int("start", start), zap.Int("limit", limit))
	return s.getFiltered(ctx, fexa.NewFilterBuilder().Where("active", true).Build(), start, limit)
}

// GetLocationsByClient fetches one page of the locations occupied by the
// given client.
func (s *LocationService) GetLocationsByClient(ctx context.Context, clientID, start, limit int) ([]models.LocationInfo, error) {
	s.logger.Debug("Fetching locations by client", zap.Int("client_id", clientID))
	return s.getFiltered(ctx, fexa.NewFilterBuilder().Where("occupied_by", clientID).Build(), start, limit)
}

// GetLocation fetches a single location by id.
func (s *LocationService) GetLocation(ctx context.Context, id int) (*models.LocationInfo, error) {
	resp, err := fexa.Get[models.SingleLocationResponse](ctx, s.api, fmt.Sprintf("%s/%d", locationsEndpoint, id))
	if err != nil {
		return nil, err
	}
	if resp.Location == nil {
		return nil, errors.NotFound(fmt.Sprintf("location %d not found", id), "", "")
	}
	info := locationInfo(*resp.Location)
	return &info, nil
}

func (s *LocationService) getFiltered(ctx context.Context, filters []fexa.Filter, start, limit int) ([]models.LocationInfo, error) {
	params := fexa.QueryParameters{Start: start, Limit: limit, Filters: filters}
	resp, err := fexa.Get[models.LocationsResponse](ctx, s.api, locationsEndpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return locationInfos(resp.Locations), nil
}

func locationInfos(locations []models.Location) []models.LocationInfo {
	infos := make([]models.LocationInfo, 0, len(locations))
	for _, loc := range locations {
		infos = append(infos, locationInfo(loc))
	}
	return infos
}

func locationInfo(loc models.Location) models.LocationInfo {
	info := models.LocationInfo{
		ID:           loc.ID,
		Name:         loc.Name,
		Identifier:   loc.Identifier,
		FacilityCode: loc.FacilityCode,
		Active:       loc.Active,
		OccupiedBy:   loc.OccupiedBy,
		LocationType: loc.LocationType,
		OpenDate:     loc.OpenDate,
		CloseDate:    loc.CloseDate,
	}
	if role := loc.EndUserCustomerRole; role != nil && role.DefaultAddress != nil {
		info.ClientCompany = role.DefaultAddress.Company
	}
	if addr := loc.StoreAddress; addr != nil {
		info.Address1 = addr.Address1
		info.Address2 = addr.Address2
		info.City = addr.City
		info.State = addr.State
		info.PostalCode = addr.PostalCode
		info.Country = addr.Country
		info.Phone = addr.Phone
		info.Email = addr.Email
		info.Latitude = addr.Latitude
		info.Longitude = addr.Longitude
		info.Timezone = addr.Timezone
	}
	return info
}
