package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fexa-gateway/internal/cache"
	"fexa-gateway/internal/models"

	"go.uber.org/zap"
)

// clientDumpMaxPages bounds the full client fetch that seeds the cache.
const clientDumpMaxPages = 100

// CachedClientService serves simplified client records out of an in-memory
// cache. Client data changes rarely, so the collection is cached for hours
// and all lookups (by id, name, IVR id, substring) run over the cached copy.
type CachedClientService struct {
	col    *cache.Collection[models.ClientInfo]
	logger *zap.Logger
}

// NewCachedClientService creates a cached view over the given client service.
func NewCachedClientService(clients *ClientService, ttl time.Duration, logger *zap.Logger) *CachedClientService {
	load := func(ctx context.Context) ([]models.ClientInfo, error) {
		all, err := clients.GetAllClients(ctx, clientDumpMaxPages)
		if err != nil {
			return nil, err
		}
		infos := make([]models.ClientInfo, 0, len(all))
		for _, c := range all {
			infos = append(infos, models.ClientInfo{
				ID:     c.ID,
				Name:   clientName(c),
				Dba:    clientDba(c),
				Active: c.Active,
				IvrID:  c.IvrID,
			})
		}
		return infos, nil
	}

	col := cache.NewCollection("clients", ttl, load, func(c models.ClientInfo) bool { return c.Active }, logger)
	return &CachedClientService{col: col, logger: logger}
}

// GetAll returns all cached clients, loading them on first use.
func (s *CachedClientService) GetAll(ctx context.Context) ([]models.ClientInfo, error) {
	return s.col.GetAll(ctx)
}

// GetActive returns the active subset.
func (s *CachedClientService) GetActive(ctx context.Context) ([]models.ClientInfo, error) {
	return s.col.Where(ctx, func(c models.ClientInfo) bool { return c.Active })
}

// GetByID returns the client with the given id, or nil.
func (s *CachedClientService) GetByID(ctx context.Context, id int) (*models.ClientInfo, error) {
	c, ok, err := s.col.Find(ctx, func(c models.ClientInfo) bool { return c.ID == id })
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

// GetByName returns the client whose name or DBA matches, case-insensitively.
func (s *CachedClientService) GetByName(ctx context.Context, name string) (*models.ClientInfo, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	c, ok, err := s.col.Find(ctx, func(c models.ClientInfo) bool {
		return strings.EqualFold(c.Name, name) || strings.EqualFold(c.Dba, name)
	})
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

// GetByIVRID returns the client with the given IVR id, case-insensitively.
func (s *CachedClientService) GetByIVRID(ctx context.Context, ivrID string) (*models.ClientInfo, error) {
	if strings.TrimSpace(ivrID) == "" {
		return nil, nil
	}
	c, ok, err := s.col.Find(ctx, func(c models.ClientInfo) bool { return strings.EqualFold(c.IvrID, ivrID) })
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

// Search returns clients whose name, DBA or IVR id contains the term,
// sorted by name.
func (s *CachedClientService) Search(ctx context.Context, term string) ([]models.ClientInfo, error) {
	if strings.TrimSpace(term) == "" {
		return []models.ClientInfo{}, nil
	}
	needle := strings.ToLower(term)
	matched, err := s.col.Where(ctx, func(c models.ClientInfo) bool {
		return strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Dba), needle) ||
			strings.Contains(strings.ToLower(c.IvrID), needle)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// Refresh forces a reload of the cached collection.
func (s *CachedClientService) Refresh(ctx context.Context) ([]models.ClientInfo, error) {
	return s.col.Refresh(ctx)
}

// RefreshInBackground kicks off a fire-and-forget reload.
func (s *CachedClientService) RefreshInBackground() {
	s.col.RefreshInBackground()
}

// CacheStatus reports refresh bookkeeping for the client cache.
func (s *CachedClientService) CacheStatus() cache.Status {
	return s.col.Status()
}

// clientName resolves a display name from the client's addresses, falling
// back to the id when no company name is present anywhere.
func clientName(c models.Client) string {
	for _, addr := range []*models.Address{c.DefaultGeneralAddress, c.DefaultBillingAddress} {
		if addr == nil {
			continue
		}
		if strings.TrimSpace(addr.Company) != "" {
			return addr.Company
		}
	}
	for _, addr := range []*models.Address{c.DefaultGeneralAddress, c.DefaultBillingAddress} {
		if addr != nil && strings.TrimSpace(addr.Dba) != "" {
			return addr.Dba
		}
	}
	return fmt.Sprintf("Client %d", c.ID)
}

// clientDba returns the DBA only when it differs from the company name.
func clientDba(c models.Client) string {
	var dba, company string
	for _, addr := range []*models.Address{c.DefaultGeneralAddress, c.DefaultBillingAddress} {
		if addr == nil {
			continue
		}
		if dba == "" && strings.TrimSpace(addr.Dba) != "" {
			dba = addr.Dba
		}
		if company == "" && strings.TrimSpace(addr.Company) != "" {
			company = addr.Company
		}
	}
	if dba != "" && !strings.EqualFold(dba, company) {
		return dba
	}
	return ""
}
