package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/asteroid-hazard-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/asteroid-hazard-service/internal/adapter/kafka"
	"github.com/couchcryptid/asteroid-hazard-service/internal/adapter/neows"
	"github.com/couchcryptid/asteroid-hazard-service/internal/config"
	"github.com/couchcryptid/asteroid-hazard-service/internal/observability"
	"github.com/couchcryptid/asteroid-hazard-service/internal/selector"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	feed := neows.NewClient(cfg.NeoWsBaseURL, cfg.NeoWsAPIKey, cfg.NeoWsTimeout, metrics, logger)

	// Report publishing is feature-flagged via REPORTS_ENABLED / KAFKA_BROKERS.
	var (
		publisher selector.ReportPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.ReportsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.ReportsEnabled.Set(1)
		logger.Info("hazard report publishing enabled", "topic", cfg.KafkaReportTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("hazard report publishing disabled")
	}

	sel := selector.New(feed, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, sel, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		logger.Error("http server error", "error", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	// Let background report publishes finish before the writer closes.
	sel.Wait()
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	if exitCode != 0 {
		os.Exit(exitCode) //nolint:gocritic // deferred cancels are moot at exit
	}
}
