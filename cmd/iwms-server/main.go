// cmd/iwms-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	httpclient "iwms-dashboard/internal/common/http"
	"iwms-dashboard/internal/common/i18n"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/metrics"
	"iwms-dashboard/internal/common/observability"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/dashboard"
	"iwms-dashboard/internal/server"
	"iwms-dashboard/internal/services"
	"iwms-dashboard/pkg/registry"
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
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting IWMS dashboard...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, nil, log)

	ctx := context.Background()
	deps := services.Dependencies{}
	checks := map[string]server.HealthCheck{}

	// --- PostgreSQL ---
	if cfg.Database.Postgres.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			deps.Postgres, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return deps.Postgres.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer deps.Postgres.Close()
		checks["postgres"] = deps.Postgres.Ping
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Redis ---
	if cfg.Database.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			deps.Redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return deps.Redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer deps.Redis.Close()
		checks["redis"] = deps.Redis.Ping
		zapLog.Info("Redis connected successfully")
	}

	// --- Elasticsearch ---
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			deps.Elasticsearch, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return deps.Elasticsearch.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		checks["elasticsearch"] = deps.Elasticsearch.Ping
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Building management gateway ---
	if bms := cfg.Gateway.BMS; bms.BaseURL != "" {
		headers := map[string]string{}
		if bms.APIKey != "" {
			headers["X-API-Key"] = bms.APIKey
		}
		deps.BMS = httpclient.NewClient(bms.BaseURL, config.GetDuration(bms.Timeout), headers)
		zapLog.Info("BMS gateway client initialized", zap.String("baseURL", bms.BaseURL))
	}

	// --- Services ---
	recorder := metrics.NewRecorder()
	svcs, err := services.New(cfg, deps, log, result.WithLogger(log), result.WithRecorder(recorder))
	if err != nil {
		zapLog.Fatal("service setup failed", zap.Error(err))
	}

	reg, err := registry.LoadRegistry(cfg.Dashboard.RegistryPath)
	if err != nil {
		zapLog.Fatal("page registry load failed", zap.Error(err), zap.String("path", cfg.Dashboard.RegistryPath))
	}

	dash, err := dashboard.New(reg, svcs, dashboard.Options{
		BuildingID: cfg.Dashboard.BuildingID,
		Logger:     log,
		Recorder:   recorder,
	})
	if err != nil {
		zapLog.Fatal("dashboard setup failed", zap.Error(err))
	}

	handler := server.New(svcs, dash, server.Options{
		DefaultLocale: i18n.Parse(cfg.Locale.Default, i18n.Indonesian),
		Logger:        log,
		Observability: obs,
		Metrics:       promhttp.Handler(),
		Checks:        checks,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	obs.Shutdown(shutdownCtx)

	zapLog.Info("IWMS dashboard stopped")
}
