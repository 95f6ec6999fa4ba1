// internal/workers/discovery/browse-providers/models.go
package browseproviders

import (
	"github.com/ThanushaGali/CaConnect/internal/discovery"
	"github.com/ThanushaGali/CaConnect/internal/models"
)

type Input struct {
	Filters  discovery.FilterState `json:"filters"`
	SortBy   string                `json:"sortBy"`
	ViewMode string                `json:"viewMode"`
}

type Output struct {
	RequestID     string                   `json:"requestId"`
	Total         int                      `json:"total"`
	Empty         bool                     `json:"empty"`
	CanClear      bool                     `json:"canClear"`
	Truncated     bool                     `json:"truncated"`
	SortBy        discovery.SortKey        `json:"sortBy"`
	ViewMode      discovery.ViewMode       `json:"viewMode"`
	ActiveFilters []discovery.ActiveFilter `json:"activeFilters"`
	Search        *discovery.ActiveFilter  `json:"search,omitempty"`
	Providers     []ProviderSummary        `json:"providers"`
}

// ProviderSummary is the card-sized view of a provider. Domains holds only the
// badges visible in the requested view mode.
type ProviderSummary struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Avatar            string              `json:"avatar,omitempty"`
	Experience        int                 `json:"experience"`
	Rating            float64             `json:"rating"`
	ReviewCount       int                 `json:"reviewCount"`
	Location          string              `json:"location"`
	HourlyRate        float64             `json:"hourlyRate"`
	Availability      models.Availability `json:"availability"`
	CompletedProjects int                 `json:"completedProjects"`
	Domains           []string            `json:"domains"`
	MoreDomains       int                 `json:"moreDomains"`
}

func summarize(p *models.Provider, mode discovery.ViewMode) ProviderSummary {
	visible, overflow := discovery.DomainBadges(p, mode)
	badges := make([]string, len(visible))
	copy(badges, visible)
	return ProviderSummary{
		ID:                p.ID,
		Name:              p.Name,
		Avatar:            p.Avatar,
		Experience:        p.Experience,
		Rating:            p.Rating,
		ReviewCount:       p.ReviewCount,
		Location:          p.Location,
		HourlyRate:        p.Pricing.HourlyRate,
		Availability:      p.Availability,
		CompletedProjects: p.CompletedProjects,
		Domains:           badges,
		MoreDomains:       overflow,
	}
}
