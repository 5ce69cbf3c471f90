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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "github.com/wolfman30/dental-clinic-client/internal/config"
	"github.com/wolfman30/dental-clinic-client/internal/fakebackend"
	"github.com/wolfman30/dental-clinic-client/internal/observability/metrics"
	"github.com/wolfman30/dental-clinic-client/pkg/logging"
)

func main() {
	if err := appconfig.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	cfg := appconfig.Load()

	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting clinic mock backend",
		"env", cfg.Env,
		"port", cfg.MockPort,
		"seed", cfg.MockSeed,
	)

	handler, err := buildHandler(cfg, logger, prometheus.NewRegistry())
	if err != nil {
		logger.Error("failed to build backend", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.MockPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildHandler wires the fake backend with its metrics exposed on /metrics.
func buildHandler(cfg *appconfig.Config, logger *logging.Logger, reg *prometheus.Registry) (http.Handler, error) {
	backend, err := fakebackend.New(fakebackend.Options{
		Secret:             cfg.MockJWTSecret,
		TokenTTL:           cfg.SessionTTL,
		Seed:               cfg.MockSeed,
		Logger:             logger,
		Metrics:            metrics.NewBackendMetrics(reg),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthRateLimitRPS:   cfg.MockAuthRateLimitRPS,
		AuthRateBurst:      cfg.MockAuthRateBurst,
	})
	if err != nil {
		return nil, err
	}
	return backend.Handler(), nil
}
