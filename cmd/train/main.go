package main

import (
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/internal/database"
	"github.com/mealcraft/wellness-backend/internal/models"
	"github.com/mealcraft/wellness-backend/internal/service"
	"github.com/mealcraft/wellness-backend/internal/types"
)

// Offline trainer for the collaborative models. Reads ratings from a CSV
// export or straight from the ratings table, trains both models, evaluates
// them on a held-out split and writes the winner-tagged artifact.
func main() {
	_ = godotenv.Load()

	ratingsPath := flag.String("ratings", "data/ratings.csv", "path to the ratings CSV")
	fromDB := flag.String("from-db", "", "read ratings from this SQLite database instead of the CSV")
	out := flag.String("out", "data/models.gob", "path to write the trained model artifact")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var records []types.RatingRecord
	if *fromDB != "" {
		records, err = loadRatingsFromDB(*fromDB)
	} else {
		records, err = service.LoadRatingsCSV(*ratingsPath)
	}
	if err != nil {
		logger.Fatal("failed to load ratings", zap.Error(err))
	}
	logger.Info("ratings loaded", zap.Int("count", len(records)))

	trained, err := service.TrainAndSelect(records, logger)
	if err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}

	fmt.Printf("SVD           RMSE=%.4f MAE=%.4f\n", trained.SVDMetrics.RMSE, trained.SVDMetrics.MAE)
	fmt.Printf("Neighborhood  RMSE=%.4f MAE=%.4f\n", trained.NeighborhoodMetrics.RMSE, trained.NeighborhoodMetrics.MAE)
	fmt.Printf("Best: %s\n", trained.Best)

	if err := service.SaveModels(*out, trained); err != nil {
		logger.Fatal("failed to save models", zap.Error(err))
	}
	logger.Info("models saved", zap.String("path", *out))
}

func loadRatingsFromDB(path string) ([]types.RatingRecord, error) {
	db, err := database.NewSQLiteDB(path)
	if err != nil {
		return nil, err
	}

	var rows []models.Rating
	if err := db.Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}

	records := make([]types.RatingRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.ToRecord())
	}
	return records, nil
}
