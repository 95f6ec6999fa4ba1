// internal/discovery/ranking.go
package discovery

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ThanushaGali/CaConnect/internal/models"
)

var ErrInvalidSortKey = errors.New("INVALID_SORT_KEY")

// SortKey selects the ranking applied to a filtered result.
type SortKey string

const (
	SortRating     SortKey = "rating"
	SortExperience SortKey = "experience"
	SortProjects   SortKey = "projects"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"

	DefaultSortKey = SortRating
)

// SortOption pairs a key with the label shown in the sort picker.
type SortOption struct {
	Key   SortKey `json:"key"`
	Label string  `json:"label"`
}

var sortOptions = []SortOption{
	{Key: SortRating, Label: "Highest Rated"},
	{Key: SortExperience, Label: "Most Experienced"},
	{Key: SortProjects, Label: "Most Projects"},
	{Key: SortPriceLow, Label: "Price: Low to High"},
	{Key: SortPriceHigh, Label: "Price: High to Low"},
}

// SortOptions lists the supported keys in picker order.
func SortOptions() []SortOption {
	out := make([]SortOption, len(sortOptions))
	copy(out, sortOptions)
	return out
}

func (k SortKey) Valid() bool {
	for _, o := range sortOptions {
		if o.Key == k {
			return true
		}
	}
	return false
}

// ParseSortKey maps a wire value to a SortKey. Blank input selects the default.
func ParseSortKey(raw string) (SortKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSortKey, nil
	}
	k := SortKey(raw)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, raw)
	}
	return k, nil
}

// Rank returns a newly ordered copy of providers. Records with equal primary
// keys are ordered by ID ascending, so the output never depends on input order.
// An unknown key falls back to the default ranking.
func Rank(providers []*models.Provider, key SortKey) []*models.Provider {
	out := make([]*models.Provider, len(providers))
	copy(out, providers)

	cmp := comparator(key)
	sort.SliceStable(out, func(i, j int) bool {
		if c := cmp(out[i], out[j]); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// comparator returns a three-way compare where negative means a ranks first.
func comparator(key SortKey) func(a, b *models.Provider) int {
	switch key {
	case SortExperience:
		return func(a, b *models.Provider) int { return compareDesc(float64(a.Experience), float64(b.Experience)) }
	case SortProjects:
		return func(a, b *models.Provider) int {
			return compareDesc(float64(a.CompletedProjects), float64(b.CompletedProjects))
		}
	case SortPriceLow:
		return func(a, b *models.Provider) int { return -compareDesc(a.Pricing.HourlyRate, b.Pricing.HourlyRate) }
	case SortPriceHigh:
		return func(a, b *models.Provider) int { return compareDesc(a.Pricing.HourlyRate, b.Pricing.HourlyRate) }
	default:
		return func(a, b *models.Provider) int { return compareDesc(a.Rating, b.Rating) }
	}
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
