package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealcraft/wellness-backend/internal/service"
)

// Deps carries everything the handlers need. DB, Cache and the hybrid
// recommender's predictor are optional; handlers degrade instead of failing
// when they are absent.
type Deps struct {
	DietService  *service.DietService
	Hybrid       *service.HybridRecommender
	TokenService *service.TokenService
	DB           *gorm.DB
	Cache        *redis.Client
	Logger       *zap.Logger
}

// SetupAPI registers every route on the router.
func SetupAPI(router *gin.Engine, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		nutritionHandler := NewNutritionHandler(deps.DietService, deps.Cache, deps.Logger)
		recommendHandler := NewRecommendHandler(deps.DietService, deps.Hybrid, deps.Logger)
		conditionsHandler := NewConditionsHandler()
		ratingsHandler := NewRatingsHandler(deps.DB, deps.TokenService, deps.Logger)

		nutritionHandler.RegisterRoutes(v1)
		recommendHandler.RegisterRoutes(v1)
		conditionsHandler.RegisterRoutes(v1)
		ratingsHandler.RegisterRoutes(v1)
	}
}
