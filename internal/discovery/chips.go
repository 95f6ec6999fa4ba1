// internal/discovery/chips.go
package discovery

import (
	"fmt"
	"strings"
)

// FilterKey names one removable filter dimension.
type FilterKey string

const (
	KeyDomain     FilterKey = "domain"
	KeyLocation   FilterKey = "location"
	KeyExperience FilterKey = "experience"
	KeyRating     FilterKey = "rating"
	KeySearch     FilterKey = "search"
)

// ParseFilterKey accepts the wire names of the removable dimensions.
func ParseFilterKey(raw string) (FilterKey, bool) {
	switch k := FilterKey(strings.TrimSpace(raw)); k {
	case KeyDomain, KeyLocation, KeyExperience, KeyRating, KeySearch:
		return k, true
	}
	return "", false
}

// ActiveFilter describes one dimension that is off its default, for display
// as a removable chip.
type ActiveFilter struct {
	Key   FilterKey `json:"key"`
	Label string    `json:"label"`
	Value string    `json:"value"`
}

func (a ActiveFilter) String() string {
	return a.Label + ": " + a.Value
}

// ActiveFilters derives the chip list for f in the fixed order domain,
// location, experience, rating. Search text is reported by SearchFilter.
func ActiveFilters(f FilterState) []ActiveFilter {
	out := make([]ActiveFilter, 0, 4)
	if f.Domain != Any {
		out = append(out, ActiveFilter{Key: KeyDomain, Label: "Domain", Value: f.Domain})
	}
	if f.Location != Any {
		out = append(out, ActiveFilter{Key: KeyLocation, Label: "Location", Value: f.Location})
	}
	if f.MinExperience > 0 {
		out = append(out, ActiveFilter{Key: KeyExperience, Label: "Experience", Value: fmt.Sprintf("%d+ years", f.MinExperience)})
	}
	if f.MinRating > 0 {
		out = append(out, ActiveFilter{Key: KeyRating, Label: "Rating", Value: fmt.Sprintf("%.1f+", f.MinRating)})
	}
	return out
}

// SearchFilter returns the chip for the text query, if one is set.
func SearchFilter(f FilterState) (ActiveFilter, bool) {
	if !f.HasSearch() {
		return ActiveFilter{}, false
	}
	return ActiveFilter{Key: KeySearch, Label: "Search", Value: strings.TrimSpace(f.Query)}, true
}
