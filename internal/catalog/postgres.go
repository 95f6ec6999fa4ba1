// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ThanushaGali/CaConnect/internal/models"
)

const (
	selectProvidersSQL = `
		SELECT id, name, email, avatar, experience, domains, rating, review_count,
		       location, description, hourly_rate, consultation_fee, availability,
		       completed_projects
		FROM ca_providers
		ORDER BY position, id`

	selectServicesSQL = `
		SELECT provider_id, id, name, description, base_price, duration, category
		FROM ca_services
		ORDER BY provider_id, position, id`

	selectDomainsSQL   = `SELECT name FROM ca_domains ORDER BY position`
	selectLocationsSQL = `SELECT label FROM ca_locations ORDER BY position`
)

// PostgresSource reads the catalog from the ca_* tables. Provider domain tags
// are stored as a text[] column.
type PostgresSource struct {
	DB *sql.DB
}

func (s PostgresSource) Name() string { return "postgres" }

func (s PostgresSource) Load(ctx context.Context) (*Data, error) {
	providers, err := s.providers(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachServices(ctx, providers); err != nil {
		return nil, err
	}
	domains, err := s.strings(ctx, selectDomainsSQL)
	if err != nil {
		return nil, err
	}
	locations, err := s.strings(ctx, selectLocationsSQL)
	if err != nil {
		return nil, err
	}

	return &Data{
		Domains:   domains,
		Locations: locations,
		Providers: providers,
	}, nil
}

func (s PostgresSource) providers(ctx context.Context) ([]*models.Provider, error) {
	rows, err := s.DB.QueryContext(ctx, selectProvidersSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: providers: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []*models.Provider
	for rows.Next() {
		var (
			p            models.Provider
			email        sql.NullString
			avatar       sql.NullString
			availability string
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &email, &avatar, &p.Experience,
			pq.Array(&p.Domains), &p.Rating, &p.ReviewCount,
			&p.Location, &p.Description, &p.Pricing.HourlyRate, &p.Pricing.ConsultationFee,
			&availability, &p.CompletedProjects,
		); err != nil {
			return nil, fmt.Errorf("%w: scan provider: %v", ErrQueryFailed, err)
		}
		p.Email = email.String
		p.Avatar = avatar.String
		p.Availability = models.Availability(availability)
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: providers: %v", ErrQueryFailed, err)
	}
	return out, nil
}

func (s PostgresSource) attachServices(ctx context.Context, providers []*models.Provider) error {
	byID := make(map[string]*models.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}

	rows, err := s.DB.QueryContext(ctx, selectServicesSQL)
	if err != nil {
		return fmt.Errorf("%w: services: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	for rows.Next() {
		var providerID string
		var svc models.Service
		if err := rows.Scan(&providerID, &svc.ID, &svc.Name, &svc.Description, &svc.BasePrice, &svc.Duration, &svc.Category); err != nil {
			return fmt.Errorf("%w: scan service: %v", ErrQueryFailed, err)
		}
		p, ok := byID[providerID]
		if !ok {
			return fmt.Errorf("%w: service %s references unknown provider %s", ErrCatalogInvalid, svc.ID, providerID)
		}
		p.Services = append(p.Services, svc)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: services: %v", ErrQueryFailed, err)
	}
	return nil
}

func (s PostgresSource) strings(ctx context.Context, query string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return out, nil
}
