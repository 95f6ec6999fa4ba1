// cmd/discovery-manager/wiring.go
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThanushaGali/CaConnect/internal/catalog"
	"github.com/ThanushaGali/CaConnect/internal/common/camunda"
	"github.com/ThanushaGali/CaConnect/internal/common/config"
	"github.com/ThanushaGali/CaConnect/internal/common/database"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/discovery"

	bp "github.com/ThanushaGali/CaConnect/internal/workers/discovery/browse-providers"
	lp "github.com/ThanushaGali/CaConnect/internal/workers/discovery/lookup-provider"
	pbf "github.com/ThanushaGali/CaConnect/internal/workers/discovery/parse-browse-filters"
)

// catalogSource picks the provider source named in the config. conns must
// already hold the client the source reads from.
func catalogSource(cfg *config.Config, conns *database.Connections) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceEmbedded, "":
		return catalog.NewEmbeddedSource(), nil
	case config.CatalogSourceFile:
		return catalog.FileSource{Path: cfg.Catalog.Path}, nil
	case config.CatalogSourcePostgres:
		if conns == nil || conns.Postgres == nil {
			return nil, fmt.Errorf("catalog source %q needs a postgres connection", cfg.Catalog.Source)
		}
		return catalog.PostgresSource{DB: conns.Postgres.DB}, nil
	case config.CatalogSourceElasticsearch:
		if conns == nil || conns.Elasticsearch == nil {
			return nil, fmt.Errorf("catalog source %q needs an elasticsearch connection", cfg.Catalog.Source)
		}
		return catalog.ElasticsearchSource{
			Client: conns.Elasticsearch.Client,
			Index:  cfg.Catalog.Index,
			Size:   cfg.Catalog.MaxProviders,
		}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// registerWorkers opens a job worker for every enabled discovery task type.
func registerWorkers(workers *camunda.Workers, cfg *config.Config, svc *discovery.Service, log logger.Logger) error {
	parseCfg := config.GetWorkerConfig(cfg, pbf.TaskType)
	parse, err := pbf.NewHandler(pbf.ConfigFrom(parseCfg), svc, log)
	if err != nil {
		return err
	}
	workers.Start(pbf.TaskType, parseCfg, parse.Handle)

	browseCfg := config.GetWorkerConfig(cfg, bp.TaskType)
	browse := bp.NewHandler(bp.ConfigFrom(browseCfg), svc, log)
	workers.Start(bp.TaskType, browseCfg, browse.Handle)

	lookupCfg := config.GetWorkerConfig(cfg, lp.TaskType)
	lookup, err := lp.NewHandler(lp.ConfigFrom(lookupCfg), svc, log)
	if err != nil {
		return err
	}
	workers.Start(lp.TaskType, lookupCfg, lookup.Handle)

	log.Info("workers registered", map[string]interface{}{"running": workers.Running()})
	return nil
}

// readiness reports ready when every open backend answers and, if the
// manager is connected to Zeebe, the broker topology can be read.
type readiness struct {
	conns *database.Connections
	zeebe *camunda.Client
}

func (r readiness) Ready(ctx context.Context) error {
	var errs []error
	if r.conns != nil {
		errs = append(errs, r.conns.Ready(ctx))
	}
	if r.zeebe != nil {
		errs = append(errs, r.zeebe.HealthCheck(ctx))
	}
	return errors.Join(errs...)
}
