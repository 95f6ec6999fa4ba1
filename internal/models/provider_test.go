// internal/models/provider_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProvider() Provider {
	return Provider{
		ID:                "1",
		Name:              "Rajesh Kumar",
		Experience:        8,
		Domains:           []string{"GST", "ITR"},
		Rating:            4.8,
		ReviewCount:       124,
		Location:          "Mumbai, Maharashtra",
		Services:          []Service{{ID: "s1", Name: "GST Registration", BasePrice: 5000}},
		Pricing:           Pricing{HourlyRate: 1500, ConsultationFee: 500},
		Availability:      AvailabilityAvailable,
		CompletedProjects: 245,
	}
}

func TestProvider_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Provider)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Provider) {}},
		{name: "zero experience is fine", mutate: func(p *Provider) { p.Experience = 0 }},
		{name: "missing id", mutate: func(p *Provider) { p.ID = " " }, wantErr: true},
		{name: "missing name", mutate: func(p *Provider) { p.Name = "" }, wantErr: true},
		{name: "negative experience", mutate: func(p *Provider) { p.Experience = -1 }, wantErr: true},
		{name: "rating above five", mutate: func(p *Provider) { p.Rating = 5.1 }, wantErr: true},
		{name: "negative projects", mutate: func(p *Provider) { p.CompletedProjects = -3 }, wantErr: true},
		{name: "negative hourly rate", mutate: func(p *Provider) { p.Pricing.HourlyRate = -1 }, wantErr: true},
		{name: "no domains", mutate: func(p *Provider) { p.Domains = nil }, wantErr: true},
		{name: "blank domain", mutate: func(p *Provider) { p.Domains = []string{"GST", ""} }, wantErr: true},
		{name: "unknown availability", mutate: func(p *Provider) { p.Availability = "away" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProvider()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidProvider)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProvider_FindService(t *testing.T) {
	p := validProvider()

	s, ok := p.FindService("s1")
	require.True(t, ok)
	assert.Equal(t, "GST Registration", s.Name)

	_, ok = p.FindService("missing")
	assert.False(t, ok)
}
