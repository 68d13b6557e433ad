package main

import (
	"context"
	"smartoffice/internal/assets/handler"
	"smartoffice/internal/assets/repository"
	"smartoffice/internal/assets/seed"
	"smartoffice/internal/assets/service"
	"smartoffice/internal/assets/validator"
	"smartoffice/pkg/app"
	"smartoffice/pkg/config"
	"smartoffice/pkg/metrics"
)

const ServiceName = "assets"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Assets service", "store_backend", cfg.StoreBackend)
	recorder := metrics.NewRecorder()
	assetService := initServices(cfg, recorder)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAssetHandler(assetService, cfg.Log), recorder)
	serverApp.Run()
}

func initServices(cfg *config.Config, recorder *metrics.Recorder) service.AssetService {
	assetValidator := validator.NewAssetValidator(cfg.Log)
	repo := initRepository(cfg)
	if cfg.SeedDemoAssets {
		if _, err := seed.Seed(context.Background(), repo, cfg.Log); err != nil {
			cfg.Log.Fatal("Failed to seed demo assets", "error", err)
		}
	}

	assetService := service.NewAssetService(
		repo,
		assetValidator,
		recorder,
		cfg,
	)

	cfg.Log.Info("Asset service initialized")
	return assetService
}

func initRepository(cfg *config.Config) repository.AssetRepository {
	if !cfg.UsesMongo() {
		cfg.Log.Warn("Using in-memory asset store; data is lost on restart")
		return repository.NewMemoryAssetRepository()
	}

	cfg.SetMongo()
	cfg.Log.Info("Using MongoDB asset store", "database", cfg.MongoDatabaseName)
	return repository.NewMongoAssetRepository(cfg)
}
