// cmd/discovery-manager/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ThanushaGali/CaConnect/internal/api"
	"github.com/ThanushaGali/CaConnect/internal/cache"
	"github.com/ThanushaGali/CaConnect/internal/catalog"
	"github.com/ThanushaGali/CaConnect/internal/common/camunda"
	"github.com/ThanushaGali/CaConnect/internal/common/config"
	"github.com/ThanushaGali/CaConnect/internal/common/database"
	commonerrors "github.com/ThanushaGali/CaConnect/internal/common/errors"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/common/observability"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	configPath := flag.String("config", "", "Path to a config file (defaults to configs/config.yaml)")
	flushCache := flag.Bool("flush-cache", false, "Drop memoized browse results before serving")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting discovery manager...",
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogSource", cfg.Catalog.Source),
	)

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Backing stores with retry ---
	var conns *database.Connections
	err = retryWithBackoff(func() error {
		var err error
		conns, err = database.Connect(ctx, cfg, log)
		return err
	}, 10, 2*time.Second, zapLog, "Backend connection")
	if err != nil {
		stdErr := commonerrors.NewDatabaseConnectionFailedError(err)
		zapLog.Fatal("backends failed after retries", zap.String("code", string(stdErr.Code)), zap.Error(err))
	}
	defer conns.Close()

	// --- Catalog ---
	src, err := catalogSource(cfg, conns)
	if err != nil {
		zapLog.Fatal("catalog source misconfigured", zap.Error(err))
	}
	var cat *catalog.Catalog
	err = retryWithBackoff(func() error {
		var err error
		cat, err = catalog.Load(ctx, src, cfg.Catalog.MaxProviders, log)
		return err
	}, 5, 2*time.Second, zapLog, "Catalog load")
	if err != nil {
		stdErr := commonerrors.NewCatalogLoadFailedError(src.Name(), err)
		zapLog.Fatal("catalog load failed after retries",
			zap.String("code", string(stdErr.Code)),
			zap.String("details", stdErr.Details),
		)
	}

	// --- Discovery service ---
	var resultCache discovery.ResultCache
	if conns.Redis != nil {
		rc := cache.NewResultCache(conns.Redis.Client, config.GetDuration(cfg.Cache.TTL))
		if *flushCache {
			n, err := rc.Invalidate(ctx, "discovery:browse:*")
			if err != nil {
				zapLog.Warn("cache flush failed", zap.Error(err))
			} else {
				zapLog.Info("cache flushed", zap.Int("removed", n))
			}
		}
		resultCache = rc
	}
	svc := discovery.NewService(cat, resultCache, log)

	// --- Workers ---
	var workers *camunda.Workers
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClientWithConfig(ctx, camunda.ConfigFromSettings(
				cfg.Camunda.BrokerAddress,
				config.GetDuration(cfg.Camunda.RequestTimeout),
			))
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")

		workers = camunda.NewWorkers(zeebe.GetClient(), obs, log)
		if err := registerWorkers(workers, cfg, svc, log); err != nil {
			zapLog.Fatal("worker registration failed", zap.Error(err))
		}
	} else {
		zapLog.Info("Camunda disabled, serving HTTP only")
	}

	// --- HTTP ---
	server := api.New(api.Options{
		Address:     cfg.HTTP.Address,
		ReadTimeout: config.GetDuration(cfg.HTTP.ReadTimeout),
		ServiceName: cfg.App.Name,
	}, svc, readiness{conns: conns, zeebe: zeebe}, log)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
		zapLog.Info("Shutdown signal received, stopping...")
	case err := <-serverErr:
		if err != nil {
			zapLog.Error("HTTP server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	if workers != nil {
		workers.Close()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down telemetry", zap.Error(err))
	}

	zapLog.Info("Discovery manager stopped gracefully")
}
