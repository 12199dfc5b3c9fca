package main

import (
	"flag"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/mealcraft/wellness-backend/config"
	"github.com/mealcraft/wellness-backend/internal/database"
	"github.com/mealcraft/wellness-backend/internal/models"
	"github.com/mealcraft/wellness-backend/internal/service"
)

// Seeds the recipes table from the catalog CSV. Idempotent: rows upsert on
// the catalog id.
func main() {
	_ = godotenv.Load()

	csvPath := flag.String("csv", "", "catalog CSV path (defaults to CATALOG_PATH)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	path := *csvPath
	if path == "" {
		path = cfg.CatalogPath
	}

	recipes, err := service.LoadCatalogCSV(path)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.String("path", path), zap.Error(err))
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	seeded := 0
	for _, r := range recipes {
		row := models.FromCatalogRecipe(r)
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			logger.Warn("failed to seed recipe", zap.Int("id", r.ID), zap.Error(err))
			continue
		}
		seeded++
	}
	logger.Info("seeding complete", zap.Int("seeded", seeded), zap.Int("total", len(recipes)))
}
