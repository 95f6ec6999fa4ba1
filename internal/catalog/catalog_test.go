// internal/catalog/catalog_test.go
package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
	"github.com/ThanushaGali/CaConnect/internal/models"
)

func provider(id string, domains ...string) *models.Provider {
	return &models.Provider{
		ID:           id,
		Name:         "CA " + id,
		Domains:      domains,
		Rating:       4.5,
		Location:     "Pune, Maharashtra",
		Availability: models.AvailabilityAvailable,
	}
}

func TestDefault_EmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Len(t, c.Domains(), 10)
	assert.Len(t, c.Locations(), 8)
	assert.NotEmpty(t, c.Version())

	p, ok := c.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Priya Sharma", p.Name)
	assert.Equal(t, "Delhi, NCR", p.Location)
	assert.Equal(t, 2000.0, p.Pricing.HourlyRate)

	svc, ok := p.FindService("s3")
	require.True(t, ok)
	assert.Equal(t, "Statutory Audit", svc.Name)
}

func TestDefault_FeedsDiscoveryPipeline(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	res := discovery.Apply(c.Providers(), discovery.DefaultFilterState().WithDomain("GST"), discovery.SortPriceLow)

	require.Equal(t, 2, res.Total)
	assert.Equal(t, "Amit Patel", res.Providers[0].Name)
	assert.Equal(t, "Rajesh Kumar", res.Providers[1].Name)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data *Data
	}{
		{"nil data", nil},
		{"invalid record", &Data{Providers: []*models.Provider{{ID: "1"}}}},
		{"duplicate id", &Data{Providers: []*models.Provider{provider("1", "GST"), provider("1", "ITR")}}},
		{"sentinel domain tag", &Data{Providers: []*models.Provider{provider("1", discovery.Any)}}},
		{"sentinel in vocabulary", &Data{Locations: []string{discovery.Any}}},
		{"blank vocabulary entry", &Data{Domains: []string{" "}}},
		{"nil record", &Data{Providers: []*models.Provider{nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.data, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCatalogInvalid))
		})
	}
}

func TestNew_SentinelLocation(t *testing.T) {
	p := provider("1", "GST")
	p.Location = discovery.Any

	_, err := New(&Data{Providers: []*models.Provider{p}}, 0)

	assert.True(t, errors.Is(err, ErrCatalogInvalid))
}

func TestNew_MaxProviders(t *testing.T) {
	data := &Data{Providers: []*models.Provider{provider("1", "GST"), provider("2", "ITR")}}

	_, err := New(data, 1)
	assert.True(t, errors.Is(err, ErrCatalogInvalid))

	c, err := New(data, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestNew_DerivesVocabularyFromRecords(t *testing.T) {
	data := &Data{
		Domains:   []string{"Audit"},
		Providers: []*models.Provider{provider("1", "GST", "Audit"), provider("2", "FEMA", "GST")},
	}

	c, err := New(data, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Audit", "GST", "FEMA"}, c.Domains())
	assert.Equal(t, []string{"Pune, Maharashtra"}, c.Locations())
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c, err := New(&Data{Providers: []*models.Provider{provider("1", "GST"), provider("2", "ITR")}}, 0)
	require.NoError(t, err)

	ps := c.Providers()
	ps[0], ps[1] = ps[1], ps[0]
	d := c.Domains()
	d[0] = "changed"

	assert.Equal(t, "1", c.Providers()[0].ID)
	assert.Equal(t, "GST", c.Domains()[0])
}

func TestCatalog_VersionTracksContent(t *testing.T) {
	a, err := New(&Data{Providers: []*models.Provider{provider("1", "GST")}}, 0)
	require.NoError(t, err)
	b, err := New(&Data{Providers: []*models.Provider{provider("1", "GST")}}, 0)
	require.NoError(t, err)
	changed, err := New(&Data{Providers: []*models.Provider{provider("1", "ITR")}}, 0)
	require.NoError(t, err)

	assert.Equal(t, a.Version(), b.Version())
	assert.NotEqual(t, a.Version(), changed.Version())
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) Load(context.Context) (*Data, error) { return nil, errors.New("disk on fire") }

func TestLoad_WrapsSourceFailure(t *testing.T) {
	_, err := Load(context.Background(), failingSource{}, 0, logger.NewNoOpLogger())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCatalogLoadFailed))
	assert.Contains(t, err.Error(), "broken")
}

func TestLoad_Embedded(t *testing.T) {
	c, err := Load(context.Background(), NewEmbeddedSource(), 100, logger.NewTestLogger(t))

	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
domains: [GST]
providers:
  - id: a1
    name: Sunita Rao
    experience: 3
    domains: [GST, Compliance]
    rating: 4.2
    location: Chennai, Tamil Nadu
    availability: unavailable
    pricing:
      hourlyRate: 900
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(context.Background(), FileSource{Path: path}, 0, logger.NewNoOpLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"GST", "Compliance"}, c.Domains())
	p, ok := c.Get("a1")
	require.True(t, ok)
	assert.Equal(t, models.AvailabilityUnavailable, p.Availability)
	assert.Equal(t, 900.0, p.Pricing.HourlyRate)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "nope.yaml")}, 0, logger.NewNoOpLogger())

	assert.True(t, errors.Is(err, ErrCatalogLoadFailed))
}

func TestFileSource_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers: \"not a list\"\n"), 0o600))

	_, err := FileSource{Path: path}.Load(context.Background())

	assert.Error(t, err)
}
