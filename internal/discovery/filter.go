// internal/discovery/filter.go
package discovery

import (
	"math"
	"strings"
)

// Any is the "no constraint" value for the domain and location dimensions.
// Catalogs refuse records whose domain tags or location equal it.
const Any = "all"

// Slider bounds used by every input surface. The composer itself assumes
// values already fall inside them.
const (
	MinExperienceFloor = 0
	MinExperienceCeil  = 20
	MinRatingFloor     = 0.0
	MinRatingCeil      = 5.0
	RatingStep         = 0.1
)

// FilterState is the complete set of user-controlled filter inputs for one
// discovery view. It is a value: every change produces a new FilterState.
type FilterState struct {
	Query         string  `json:"query"`
	Domain        string  `json:"domain"`
	Location      string  `json:"location"`
	MinExperience int     `json:"minExperience"`
	MinRating     float64 `json:"minRating"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		Domain:   Any,
		Location: Any,
	}
}

func (f FilterState) WithQuery(q string) FilterState {
	f.Query = q
	return f
}

func (f FilterState) WithDomain(domain string) FilterState {
	f.Domain = domain
	return f
}

func (f FilterState) WithLocation(location string) FilterState {
	f.Location = location
	return f
}

func (f FilterState) WithMinExperience(years int) FilterState {
	f.MinExperience = years
	return f
}

func (f FilterState) WithMinRating(rating float64) FilterState {
	f.MinRating = rating
	return f
}

// HasSearch reports whether the text query constrains anything.
func (f FilterState) HasSearch() bool {
	return strings.TrimSpace(f.Query) != ""
}

// IsDefault reports whether every dimension, search included, is at its default.
func (f FilterState) IsDefault() bool {
	return !f.HasSearch() && len(ActiveFilters(f)) == 0
}

// Without resets exactly one dimension to its default and leaves the rest alone.
func (f FilterState) Without(key FilterKey) FilterState {
	switch key {
	case KeyDomain:
		f.Domain = Any
	case KeyLocation:
		f.Location = Any
	case KeyExperience:
		f.MinExperience = 0
	case KeyRating:
		f.MinRating = 0
	case KeySearch:
		f.Query = ""
	}
	return f
}

// Cleared returns the all-default state in one step.
func (f FilterState) Cleared() FilterState {
	return DefaultFilterState()
}

// ClampExperience pins a requested experience threshold to the slider range.
func ClampExperience(years int) int {
	if years < MinExperienceFloor {
		return MinExperienceFloor
	}
	if years > MinExperienceCeil {
		return MinExperienceCeil
	}
	return years
}

// ClampExperienceFloat clamps a decoded JSON number before rounding it to
// whole years, so values outside the int range cannot wrap.
func ClampExperienceFloat(years float64) int {
	if math.IsNaN(years) || years < MinExperienceFloor {
		return MinExperienceFloor
	}
	if years > MinExperienceCeil {
		return MinExperienceCeil
	}
	return int(math.Round(years))
}

// ClampRating pins a requested rating threshold to the slider range and its
// 0.1 step.
func ClampRating(rating float64) float64 {
	if math.IsNaN(rating) || rating < MinRatingFloor {
		return MinRatingFloor
	}
	if rating > MinRatingCeil {
		return MinRatingCeil
	}
	return math.Round(rating*10) / 10
}

// Normalized fills blank sentinels and clamps thresholds. Input layers call it
// before handing a state to the pipeline.
func (f FilterState) Normalized() FilterState {
	if strings.TrimSpace(f.Domain) == "" {
		f.Domain = Any
	}
	if strings.TrimSpace(f.Location) == "" {
		f.Location = Any
	}
	f.MinExperience = ClampExperience(f.MinExperience)
	f.MinRating = ClampRating(f.MinRating)
	return f
}
