// internal/catalog/postgres_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThanushaGali/CaConnect/internal/models"
)

var providerColumns = []string{
	"id", "name", "email", "avatar", "experience", "domains", "rating", "review_count",
	"location", "description", "hourly_rate", "consultation_fee", "availability",
	"completed_projects",
}

func TestPostgresSource_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, email").WillReturnRows(
		sqlmock.NewRows(providerColumns).
			AddRow("1", "Rajesh Kumar", "rajesh@example.com", nil, 8, "{GST,ITR,\"Corporate Tax\"}", 4.8, 124,
				"Mumbai, Maharashtra", "GST specialist", 1500.0, 500.0, "available", 245).
			AddRow("3", "Amit Patel", nil, nil, 5, "{GST,TDS}", 4.6, 67,
				"Bangalore, Karnataka", "Bookkeeping", 1200.0, 400.0, "busy", 89),
	)
	mock.ExpectQuery("SELECT provider_id, id, name").WillReturnRows(
		sqlmock.NewRows([]string{"provider_id", "id", "name", "description", "base_price", "duration", "category"}).
			AddRow("1", "s1", "GST Registration", "Complete GST registration", 5000.0, "3-5 business days", "GST").
			AddRow("1", "s2", "ITR Filing", "Individual return", 2500.0, "1-2 business days", "Income Tax"),
	)
	mock.ExpectQuery("SELECT name FROM ca_domains").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow("GST").AddRow("ITR").AddRow("Corporate Tax").AddRow("TDS"),
	)
	mock.ExpectQuery("SELECT label FROM ca_locations").WillReturnRows(
		sqlmock.NewRows([]string{"label"}).AddRow("Mumbai, Maharashtra").AddRow("Bangalore, Karnataka"),
	)

	data, err := PostgresSource{DB: db}.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, data.Providers, 2)
	rajesh := data.Providers[0]
	assert.Equal(t, []string{"GST", "ITR", "Corporate Tax"}, rajesh.Domains)
	assert.Equal(t, "rajesh@example.com", rajesh.Email)
	assert.Len(t, rajesh.Services, 2)
	assert.Equal(t, models.AvailabilityBusy, data.Providers[1].Availability)
	assert.Empty(t, data.Providers[1].Email)
	assert.Equal(t, []string{"GST", "ITR", "Corporate Tax", "TDS"}, data.Domains)

	c, err := New(data, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestPostgresSource_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, email").WillReturnError(errors.New("relation \"ca_providers\" does not exist"))

	_, err = PostgresSource{DB: db}.Load(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueryFailed))
}

func TestPostgresSource_OrphanService(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, email").WillReturnRows(sqlmock.NewRows(providerColumns))
	mock.ExpectQuery("SELECT provider_id, id, name").WillReturnRows(
		sqlmock.NewRows([]string{"provider_id", "id", "name", "description", "base_price", "duration", "category"}).
			AddRow("99", "s1", "Ghost", "", 0.0, "", ""),
	)

	_, err = PostgresSource{DB: db}.Load(context.Background())

	assert.True(t, errors.Is(err, ErrCatalogInvalid))
}
