package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealcraft/wellness-backend/internal/middleware"
	"github.com/mealcraft/wellness-backend/internal/models"
	"github.com/mealcraft/wellness-backend/internal/service"
	"github.com/mealcraft/wellness-backend/internal/types"
)

// RatingsHandler accepts recipe ratings from authenticated users. Ratings
// are append-only; the collaborative models pick them up at the next offline
// training run.
type RatingsHandler struct {
	db           *gorm.DB
	tokenService *service.TokenService
	logger       *zap.Logger
}

func NewRatingsHandler(db *gorm.DB, tokenService *service.TokenService, logger *zap.Logger) *RatingsHandler {
	return &RatingsHandler{db: db, tokenService: tokenService, logger: logger}
}

func (h *RatingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/ratings", middleware.AuthMiddleware(h.tokenService), h.RateRecipe)
}

func (h *RatingsHandler) RateRecipe(c *gin.Context) {
	var req types.RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	raterID, exists := c.Get("rater_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rating store unavailable"})
		return
	}

	rating := models.Rating{
		RaterID:  raterID.(int),
		RecipeID: req.RecipeID,
		Score:    req.Rating,
	}
	if err := h.db.Create(&rating).Error; err != nil {
		h.logger.Error("failed to store rating", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store rating"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": rating.ID})
}
