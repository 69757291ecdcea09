package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"jornada/internal/identifier"
	identifierHandler "jornada/internal/identifier/handler"
	identifierMetrics "jornada/internal/identifier/metrics"
	"jornada/internal/platform/config"
	"jornada/internal/platform/httpserver"
	"jornada/internal/platform/logger"
	httptransport "jornada/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log)

	var (
		registerer prometheus.Registerer
		gatherer   prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		registerer, gatherer = prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	}

	svc, err := identifier.New(
		identifier.WithLogger(log),
		identifier.WithMetrics(identifierMetrics.New(registerer)),
		identifier.WithLimits(cfg.Identifier.MaxInputBytes, cfg.Identifier.BatchMax),
	)
	if err != nil {
		return fmt.Errorf("build identifier service: %w", err)
	}

	router := httptransport.NewRouter(
		httptransport.RouterConfig{Gatherer: gatherer},
		identifierHandler.New(svc, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting jornada", "addr", cfg.Addr, "metrics", cfg.MetricsEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		return err
	}
	return nil
}
