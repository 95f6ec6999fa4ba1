// internal/workers/discovery/parse-browse-filters/models.go
package parsebrowsefilters

import "github.com/ThanushaGali/CaConnect/internal/discovery"

type Input struct {
	RawFilters map[string]interface{} `json:"rawFilters"`
}

type Output struct {
	Filters       discovery.FilterState    `json:"filters"`
	SortBy        discovery.SortKey        `json:"sortBy"`
	ViewMode      discovery.ViewMode       `json:"viewMode"`
	ActiveFilters []discovery.ActiveFilter `json:"activeFilters"`
	// Adjusted names the thresholds that were clamped to slider bounds.
	Adjusted []string `json:"adjusted,omitempty"`
}
