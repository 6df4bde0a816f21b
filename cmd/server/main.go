// Package main is the entry point for the fieldbook API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldbook/internal/config"
	"fieldbook/internal/domain/comparison"
	"fieldbook/internal/domain/dataset"
	"fieldbook/internal/domain/entities"
	"fieldbook/internal/domain/fields"
	"fieldbook/internal/domain/integrity"
	"fieldbook/internal/domain/kpi"
	"fieldbook/internal/domain/records"
	"fieldbook/internal/domain/reports"
	"fieldbook/internal/domain/settings"
	"fieldbook/internal/domain/transfer"
	v1 "fieldbook/internal/infrastructure/http/v1"
	"fieldbook/internal/infrastructure/storage/memory"
	"fieldbook/internal/infrastructure/storage/postgres"
	"fieldbook/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting fieldbook server")

	// --- Dataset store ---
	var store dataset.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalw("failed to open postgres store", "error", err)
		}
		defer pgStore.Close()
		store = pgStore
		log.Info("postgres store opened")
	} else {
		memStore, err := memory.Open(cfg.DataFile)
		if err != nil {
			log.Fatalw("failed to open dataset file", "error", err, "path", cfg.DataFile)
		}
		store = memStore
		log.Infow("file store opened", "path", cfg.DataFile)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Store:  store,
		Logger: log,

		Entities:   entities.NewService(store),
		Fields:     fields.NewService(store),
		Records:    records.NewService(store),
		Settings:   settings.NewService(store),
		Reports:    reports.NewService(store),
		Comparison: comparison.NewService(store),
		KPI:        kpi.NewService(store),
		Transfer:   transfer.NewService(store),
		Integrity:  integrity.NewService(store),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
