package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/core"
	"github.com/lixenwraith/vi-boids/status"
)

// metricsHandler serves the status registry in Prometheus text format
func metricsHandler(reg *status.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(status.NewPrometheusRegistry(reg), promhttp.HandlerOpts{}))
	return mux
}

// serveMetrics listens on addr in the background; the returned func shuts it down
func serveMetrics(addr string, reg *status.Registry, logger *zap.Logger) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsHandler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	core.Go(func() {
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	})
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
