// internal/common/database/connections_test.go
package database

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThanushaGali/CaConnect/internal/common/config"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
)

func TestConnect_EmbeddedWithoutCacheOpensNothing(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogSourceEmbedded}}

	conns, err := Connect(context.Background(), cfg, logger.NewNoOpLogger())
	require.NoError(t, err)

	assert.Nil(t, conns.Postgres)
	assert.Nil(t, conns.Elasticsearch)
	assert.Nil(t, conns.Redis)
	assert.NoError(t, conns.Ready(context.Background()))
	assert.NoError(t, conns.Close())
}

func TestConnect_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.Config{
		Catalog:  config.CatalogConfig{Source: config.CatalogSourceEmbedded},
		Cache:    config.CacheConfig{Enabled: true},
		Database: config.DatabaseConfig{Redis: config.RedisConfig{Address: mr.Addr()}},
	}

	conns, err := Connect(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer conns.Close()

	require.NotNil(t, conns.Redis)
	assert.NoError(t, conns.Ready(context.Background()))

	mr.Close()
	assert.Error(t, conns.Ready(context.Background()))
}

func TestConnect_Elasticsearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := &config.Config{
		Catalog:  config.CatalogConfig{Source: config.CatalogSourceElasticsearch, Index: "ca-providers"},
		Database: config.DatabaseConfig{Elasticsearch: config.ElasticsearchConfig{Addresses: []string{srv.URL}}},
	}

	conns, err := Connect(context.Background(), cfg, logger.NewNoOpLogger())
	require.NoError(t, err)

	require.NotNil(t, conns.Elasticsearch)
	assert.Nil(t, conns.Postgres)
}

func TestNewPostgres_DoesNotDial(t *testing.T) {
	pg, err := NewPostgres(config.PostgresConfig{
		Host: "db.invalid", Port: 5432, Database: "ca", User: "ca", SSLMode: "disable",
		MaxConnections: 4, MaxIdle: 1,
	})
	require.NoError(t, err)
	defer pg.Close()

	assert.Equal(t, 4, pg.DB.Stats().MaxOpenConnections)
}
