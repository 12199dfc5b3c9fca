package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/config"
	"github.com/mealcraft/wellness-backend/internal/api"
	"github.com/mealcraft/wellness-backend/internal/database"
	"github.com/mealcraft/wellness-backend/internal/server"
	"github.com/mealcraft/wellness-backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	recipes, err := service.LoadCatalogCSV(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load recipe catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	catalog := service.NewRecipeCatalog(recipes, logger)
	logger.Info("catalog loaded", zap.Int("recipes", catalog.Len()))

	// The collaborative model is optional. Without it the hybrid blend
	// degrades to content-only scoring.
	var predictor service.RatingPredictor
	if trained, err := service.LoadModels(cfg.ModelPath); err != nil {
		logger.Warn("no collaborative model, serving content-only", zap.String("path", cfg.ModelPath), zap.Error(err))
	} else {
		predictor = trained.BestPredictor()
		logger.Info("collaborative model loaded", zap.String("best", trained.Best))
	}

	// Postgres and Redis are optional too: without Postgres the ratings
	// endpoint returns 503, without Redis diet plans are just not cached.
	db, err := database.NewDB(cfg)
	if err != nil {
		logger.Warn("database unavailable, rating submission disabled", zap.Error(err))
	}
	cache, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
	}

	dietService := service.NewDietService()
	recommender := service.NewRecommenderService(catalog, logger)
	hybrid := service.NewHybridRecommender(recommender, predictor, logger)
	tokenService := service.NewTokenService(cfg.JWTSecret)

	srv := server.NewServer(cfg, api.Deps{
		DietService:  dietService,
		Hybrid:       hybrid,
		TokenService: tokenService,
		DB:           db,
		Cache:        cache,
		Logger:       logger,
	})
	if err := srv.Start(); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
}
