// internal/common/database/connections.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThanushaGali/CaConnect/internal/common/config"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
)

// Connections holds the backends the configuration asks for. Fields for
// backends that are not needed stay nil.
type Connections struct {
	Postgres      *PostgresClient
	Elasticsearch *ElasticsearchClient
	Redis         *RedisClient
}

// Connect opens and pings only the stores the configured catalog source and
// cache need.
func Connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*Connections, error) {
	conns := &Connections{}

	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		pg, err := NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		conns.Postgres = pg
		if err := pg.Ping(ctx); err != nil {
			conns.Close()
			return nil, err
		}
		log.Info("connected to postgres", map[string]interface{}{"host": cfg.Database.Postgres.Host})

	case config.CatalogSourceElasticsearch:
		es, err := NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		conns.Elasticsearch = es
		if err := es.Ping(ctx); err != nil {
			return nil, err
		}
		log.Info("connected to elasticsearch", map[string]interface{}{"addresses": cfg.Database.Elasticsearch.Addresses})
	}

	if cfg.Cache.Enabled {
		rdb := NewRedis(cfg.Database.Redis)
		conns.Redis = rdb
		if err := rdb.Ping(ctx); err != nil {
			conns.Close()
			return nil, err
		}
		log.Info("connected to redis", map[string]interface{}{"address": cfg.Database.Redis.Address})
	}

	return conns, nil
}

// Ready pings every open backend.
func (c *Connections) Ready(ctx context.Context) error {
	var errs []error
	if c.Postgres != nil {
		errs = append(errs, c.Postgres.Ping(ctx))
	}
	if c.Elasticsearch != nil {
		errs = append(errs, c.Elasticsearch.Ping(ctx))
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Ping(ctx))
	}
	return errors.Join(errs...)
}

func (c *Connections) Close() error {
	var errs []error
	if c.Postgres != nil {
		errs = append(errs, c.Postgres.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing connections: %w", err)
	}
	return nil
}
