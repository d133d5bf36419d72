package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finca/internal/community/handler"
	"finca/internal/community/metrics"
	"finca/internal/community/service"
	"finca/internal/community/store"
	"finca/internal/persistence"
	"finca/internal/platform/config"
	"finca/internal/platform/httpserver"
	"finca/internal/platform/logger"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the community service.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	st, err := persistence.Load(cfg.DataFile)
	if err != nil {
		log.Error("failed to load snapshot", "file", cfg.DataFile, "error", err)
		os.Exit(1)
	}

	svc := service.New(st,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	)
	save := func() error {
		return svc.Export(func(s *store.Store) error {
			return persistence.Save(cfg.DataFile, s)
		})
	}

	h := handler.New(svc, log, save)
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	h.Register(router)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting community server", "addr", cfg.Addr, "data_file", cfg.DataFile)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	// Persist the final state so nothing recorded this session is lost.
	if err := save(); err != nil {
		log.Error("failed to save snapshot on exit", "file", cfg.DataFile, "error", err)
		os.Exit(1)
	}
	log.Info("snapshot saved", "file", cfg.DataFile)
}
