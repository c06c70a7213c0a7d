package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	httpadapter "github.com/couchcryptid/air-quality-predictor/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/air-quality-predictor/internal/adapter/kafka"
	"github.com/couchcryptid/air-quality-predictor/internal/config"
	"github.com/couchcryptid/air-quality-predictor/internal/model"
	"github.com/couchcryptid/air-quality-predictor/internal/observability"
	"github.com/couchcryptid/air-quality-predictor/internal/predictor"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// The model is loaded once, before the listener binds, and shared read-only.
	m, err := model.Load(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load model", "error", err, "path", cfg.ModelPath)
		os.Exit(1)
	}
	info := m.Info()
	logger.Info("model loaded", "name", info.Name, "version", info.Version, "kind", info.Kind, "path", cfg.ModelPath)

	var opts []predictor.Option
	var writer *kafkaadapter.Writer
	if cfg.EventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, predictor.WithPublisher(writer, cfg.PublishTimeout))
		logger.Info("prediction events enabled", "topic", cfg.KafkaPredictionsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("prediction events disabled")
	}

	svc := predictor.New(m, logger, metrics, opts...)

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, limiter, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	metrics.ModelLoaded.Set(0)

	logger.Info("shutdown complete")
}
