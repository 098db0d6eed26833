package services

import (
	"context"
	"fmt"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/models"
	"fexa-gateway/pkg/errors"

	"go.uber.org/zap"
)

const vendorsEndpoint = "/api/ev1/subcontractors"

// VendorService reads vendors (subcontractors) from the upstream API.
type VendorService struct {
	api    *fexa.Client
	logger *zap.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(api *fexa.Client, logger *zap.Logger) *VendorService {
	return &VendorService{api: api, logger: logger}
}

// GetVendors fetches one page of vendors.
func (s *VendorService) GetVendors(ctx context.Context, params fexa.QueryParameters) (models.VendorsResponse, error) {
	s.logger.Debug("Fetching vendors", zap.Int("start", params.Start), zap.Int("limit", params.Limit))
	return fexa.Get[models.VendorsResponse](ctx, s.api, vendorsEndpoint+"?"+params.Encode())
}

// GetVendor fetches a single vendor. The upstream wraps single lookups in a
// one-element "subcontractors" array rather than a singular key.
func (s *VendorService) GetVendor(ctx context.Context, id int) (*models.Vendor, error) {
	resp, err := fexa.Get[models.VendorResponse](ctx, s.api, fmt.Sprintf("%s/%d", vendorsEndpoint, id))
	if err != nil {
		return nil, err
	}
	if len(resp.Vendors) == 0 {
		return nil, errors.NotFound(fmt.Sprintf("vendor %d not found", id), "", "")
	}
	return &resp.Vendors[0], nil
}

// GetAllVendors fetches every vendor page by page, bounded by maxPages.
func (s *VendorService) GetAllVendors(ctx context.Context, maxPages int) ([]models.Vendor, error) {
	s.logger.Info("Fetching all vendors", zap.Int("max_pages", maxPages))

	return fexa.FetchAll(ctx, func(ctx context.Context, start, limit int) (fexa.Page[models.Vendor], error) {
		resp, err := s.GetVendors(ctx, fexa.QueryParameters{Start: start, Limit: limit})
		if err != nil {
			return fexa.Page[models.Vendor]{}, err
		}
		return fexa.Page[models.Vendor]{Items: resp.Vendors, Total: resp.Total}, nil
	}, 100, maxPages)
}
