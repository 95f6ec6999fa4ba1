// internal/discovery/predicate.go
package discovery

import (
	"strings"

	"github.com/ThanushaGali/CaConnect/internal/models"
)

// Matches reports whether p satisfies every dimension of f.
func Matches(p *models.Provider, f FilterState) bool {
	return matchesText(p, f.Query) &&
		matchesDomain(p, f.Domain) &&
		matchesLocation(p, f.Location) &&
		p.Experience >= f.MinExperience &&
		p.Rating >= f.MinRating
}

// Filter returns the providers matching f in their original order. The input
// slice is never modified and the records are shared, not copied.
func Filter(providers []*models.Provider, f FilterState) []*models.Provider {
	out := make([]*models.Provider, 0, len(providers))
	for _, p := range providers {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matchesText(p *models.Provider, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, d := range p.Domains {
		if strings.Contains(strings.ToLower(d), q) {
			return true
		}
	}
	return false
}

func matchesDomain(p *models.Provider, domain string) bool {
	if domain == Any {
		return true
	}
	for _, d := range p.Domains {
		if d == domain {
			return true
		}
	}
	return false
}

func matchesLocation(p *models.Provider, location string) bool {
	return location == Any || p.Location == location
}
