// internal/discovery/fixtures_test.go
package discovery

import (
	"context"
	"errors"

	"github.com/ThanushaGali/CaConnect/internal/models"
)

func sampleProviders() []*models.Provider {
	return []*models.Provider{
		{
			ID:                "1",
			Name:              "Rajesh Kumar",
			Experience:        8,
			Domains:           []string{"GST", "ITR", "Corporate Tax"},
			Rating:            4.8,
			ReviewCount:       156,
			Location:          "Mumbai, Maharashtra",
			Pricing:           models.Pricing{HourlyRate: 1500, ConsultationFee: 500},
			Availability:      models.AvailabilityAvailable,
			CompletedProjects: 243,
			Services: []models.Service{
				{ID: "s1", Name: "GST Registration", BasePrice: 2500},
			},
		},
		{
			ID:                "2",
			Name:              "Priya Sharma",
			Experience:        12,
			Domains:           []string{"Audit", "Company Law", "FEMA"},
			Rating:            4.9,
			ReviewCount:       203,
			Location:          "Delhi NCR",
			Pricing:           models.Pricing{HourlyRate: 2000, ConsultationFee: 750},
			Availability:      models.AvailabilityAvailable,
			CompletedProjects: 312,
		},
		{
			ID:                "3",
			Name:              "Amit Patel",
			Experience:        5,
			Domains:           []string{"GST", "TDS", "Bookkeeping"},
			Rating:            4.6,
			ReviewCount:       89,
			Location:          "Bangalore, Karnataka",
			Pricing:           models.Pricing{HourlyRate: 1200, ConsultationFee: 400},
			Availability:      models.AvailabilityBusy,
			CompletedProjects: 128,
		},
	}
}

func ids(ps []*models.Provider) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

type stubCatalog struct {
	providers []*models.Provider
	domains   []string
	locations []string
	version   string
}

func newStubCatalog(ps []*models.Provider) *stubCatalog {
	return &stubCatalog{
		providers: ps,
		domains:   []string{"GST", "ITR", "Corporate Tax", "Audit", "Company Law", "FEMA", "TDS", "Bookkeeping"},
		locations: []string{"Mumbai, Maharashtra", "Delhi NCR", "Bangalore, Karnataka"},
		version:   "v1",
	}
}

func (c *stubCatalog) Providers() []*models.Provider { return c.providers }
func (c *stubCatalog) Domains() []string { return c.domains }
func (c *stubCatalog) Locations() []string { return c.locations }
func (c *stubCatalog) Version() string { return c.version }

func (c *stubCatalog) Get(id string) (*models.Provider, bool) {
	for _, p := range c.providers {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

type memoryCache struct {
	entries map[string][]string
	gets    int
	sets    int
	failGet bool
	failSet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]string)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]string, bool, error) {
	m.gets++
	if m.failGet {
		return nil, false, errors.New("connection refused")
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, ids []string) error {
	m.sets++
	if m.failSet {
		return errors.New("connection refused")
	}
	m.entries[key] = ids
	return nil
}
