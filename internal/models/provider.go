// internal/models/provider.go
package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidProvider = errors.New("INVALID_PROVIDER")

// Availability is the booking state a provider advertises.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBusy        Availability = "busy"
	AvailabilityUnavailable Availability = "unavailable"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityUnavailable:
		return true
	}
	return false
}

// Provider is one CA listed in the catalog. Records are read-only once loaded.
type Provider struct {
	ID                string       `json:"id" yaml:"id"`
	Name              string       `json:"name" yaml:"name"`
	Email             string       `json:"email,omitempty" yaml:"email"`
	Avatar            string       `json:"avatar,omitempty" yaml:"avatar"`
	Experience        int          `json:"experience" yaml:"experience"`
	Domains           []string     `json:"domains" yaml:"domains"`
	Rating            float64      `json:"rating" yaml:"rating"`
	ReviewCount       int          `json:"reviewCount" yaml:"reviewCount"`
	Location          string       `json:"location" yaml:"location"`
	Description       string       `json:"description" yaml:"description"`
	Services          []Service    `json:"services" yaml:"services"`
	Pricing           Pricing      `json:"pricing" yaml:"pricing"`
	Availability      Availability `json:"availability" yaml:"availability"`
	CompletedProjects int          `json:"completedProjects" yaml:"completedProjects"`
}

type Pricing struct {
	HourlyRate      float64 `json:"hourlyRate" yaml:"hourlyRate"`
	ConsultationFee float64 `json:"consultationFee" yaml:"consultationFee"`
}

type Service struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	BasePrice   float64 `json:"basePrice" yaml:"basePrice"`
	Duration    string  `json:"duration" yaml:"duration"`
	Category    string  `json:"category" yaml:"category"`
}

// FindService returns the offered service with the given id.
func (p *Provider) FindService(id string) (Service, bool) {
	for _, s := range p.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// Validate checks the field ranges every catalog source must honor.
func (p *Provider) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProvider)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: provider %s: name is required", ErrInvalidProvider, p.ID)
	}
	if p.Experience < 0 {
		return fmt.Errorf("%w: provider %s: negative experience %d", ErrInvalidProvider, p.ID, p.Experience)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: provider %s: rating %.2f outside 0-5", ErrInvalidProvider, p.ID, p.Rating)
	}
	if p.ReviewCount < 0 || p.CompletedProjects < 0 {
		return fmt.Errorf("%w: provider %s: negative counts", ErrInvalidProvider, p.ID)
	}
	if p.Pricing.HourlyRate < 0 || p.Pricing.ConsultationFee < 0 {
		return fmt.Errorf("%w: provider %s: negative pricing", ErrInvalidProvider, p.ID)
	}
	if len(p.Domains) == 0 {
		return fmt.Errorf("%w: provider %s: at least one domain is required", ErrInvalidProvider, p.ID)
	}
	for _, d := range p.Domains {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("%w: provider %s: empty domain tag", ErrInvalidProvider, p.ID)
		}
	}
	if !p.Availability.Valid() {
		return fmt.Errorf("%w: provider %s: unknown availability %q", ErrInvalidProvider, p.ID, p.Availability)
	}
	return nil
}
