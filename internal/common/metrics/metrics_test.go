// internal/common/metrics/metrics_test.go
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDiscoveryQueries_CountsByLabel(t *testing.T) {
	before := testutil.ToFloat64(DiscoveryQueries.WithLabelValues("price-low", CacheMiss))

	DiscoveryQueries.WithLabelValues("price-low", CacheMiss).Inc()
	DiscoveryQueries.WithLabelValues("price-low", CacheMiss).Inc()

	assert.Equal(t, before+2, testutil.ToFloat64(DiscoveryQueries.WithLabelValues("price-low", CacheMiss)))
}

func TestCatalogProviders_Gauge(t *testing.T) {
	CatalogProviders.Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(CatalogProviders))
}
