package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mediastash/mediastash-backend/api/routes"
	"github.com/mediastash/mediastash-backend/internal/media"
	"github.com/mediastash/mediastash-backend/internal/metadata"
	"github.com/mediastash/mediastash-backend/internal/storage"
	"github.com/mediastash/mediastash-backend/internal/supporters"
	"github.com/mediastash/mediastash-backend/pkg/config"
	"github.com/mediastash/mediastash-backend/pkg/logger"
	"github.com/mediastash/mediastash-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	disk, err := storage.NewLocal(cfg.Storage.Root)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload storage", err)
		os.Exit(1)
	}

	store := metadata.NewStore(cfg.Storage.MetadataFile, logg)

	mediaService, err := media.NewService(store, disk)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	supportersService, err := supporters.NewService(cfg.Storage.SupportersFile)
	if err != nil {
		logg.Error(context.Background(), "failed to create supporters service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	requestMetrics := metrics.NewRequestMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, mediaService, supportersService, disk.Root(), requestMetrics, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
