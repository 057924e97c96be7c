package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maestrofurniture/docgen/internal/bootstrap"
	"github.com/maestrofurniture/docgen/internal/config"
	"github.com/maestrofurniture/docgen/internal/observability/logging"
	"github.com/maestrofurniture/docgen/internal/observability/metrics"
)

const serviceName = "docgen-worker"

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsHandler(workerMetrics),
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeArtifactQueued(ctx, func(handlerCtx context.Context, artifactID string) error {
		renderCtx, cancel := context.WithTimeout(handlerCtx, 2*time.Minute)
		defer cancel()
		return renderOne(renderCtx, app, workerMetrics, artifactID)
	})
	if err != nil {
		slog.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}

func metricsHandler(m *metrics.WorkerMetrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	return mux
}

func renderOne(ctx context.Context, app *bootstrap.App, m *metrics.WorkerMetrics, artifactID string) error {
	start := time.Now()
	if art, err := app.Artifacts.Get(ctx, artifactID); err == nil {
		m.ObserveQueueLag(serviceName, start.Sub(art.CreatedAt))
	}

	m.StartRender()
	err := app.Certificates.RenderArtifact(ctx, artifactID)
	m.FinishRender(serviceName, time.Since(start), err)
	if err != nil {
		return err
	}

	if art, getErr := app.Artifacts.Get(ctx, artifactID); getErr == nil {
		m.ObserveArtifactSize(serviceName, art.ByteSize)
	}
	return nil
}
