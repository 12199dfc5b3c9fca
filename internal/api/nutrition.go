package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/internal/service"
	"github.com/mealcraft/wellness-backend/internal/types"
)

const dietPlanCacheTTL = time.Hour

// NutritionHandler serves daily nutrition plans. Plans are pure functions of
// the profile, so responses are cached by profile hash when Redis is up.
type NutritionHandler struct {
	dietService *service.DietService
	cache       *redis.Client
	logger      *zap.Logger
}

func NewNutritionHandler(dietService *service.DietService, cache *redis.Client, logger *zap.Logger) *NutritionHandler {
	return &NutritionHandler{dietService: dietService, cache: cache, logger: logger}
}

func (h *NutritionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/diet-plan", h.GeneratePlan)
}

func (h *NutritionHandler) GeneratePlan(c *gin.Context) {
	var profile types.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	key := dietPlanCacheKey(profile)
	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), key).Result(); err == nil {
			var plan types.NutritionTarget
			if json.Unmarshal([]byte(cached), &plan) == nil {
				c.JSON(http.StatusOK, plan)
				return
			}
		}
	}

	plan, err := h.dietService.GeneratePlan(profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate plan"})
		return
	}

	if h.cache != nil {
		if body, err := json.Marshal(plan); err == nil {
			if err := h.cache.Set(context.WithoutCancel(c.Request.Context()), key, body, dietPlanCacheTTL).Err(); err != nil {
				h.logger.Warn("failed to cache diet plan", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, plan)
}

func dietPlanCacheKey(profile types.UserProfile) string {
	body, _ := json.Marshal(profile)
	sum := sha256.Sum256(body)
	return "diet-plan:" + hex.EncodeToString(sum[:])
}
