package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/internal/service"
	"github.com/mealcraft/wellness-backend/internal/types"
)

// RecommendHandler serves the recommendation endpoints. Every request
// derives the nutrition target from the profile inline; targets are cheap
// and never persisted.
type RecommendHandler struct {
	dietService *service.DietService
	hybrid      *service.HybridRecommender
	logger      *zap.Logger
}

func NewRecommendHandler(dietService *service.DietService, hybrid *service.HybridRecommender, logger *zap.Logger) *RecommendHandler {
	return &RecommendHandler{dietService: dietService, hybrid: hybrid, logger: logger}
}

func (h *RecommendHandler) RegisterRoutes(router *gin.RouterGroup) {
	recs := router.Group("/recommendations")
	{
		recs.POST("", h.Recommend)
		recs.POST("/hybrid", h.RecommendHybrid)
		recs.POST("/day", h.RecommendDay)
	}
}

// Recommend runs the content-based pipeline only. The hybrid recommender is
// still the entry point; without a user id it blends in a neutral taste
// score, which preserves the content-based order.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	req, plan, ok := h.bindAndPlan(c)
	if !ok {
		return
	}

	target := mealTargetFor(plan, req.Meal)
	result := h.hybrid.Recommend(nil, target, optsFromRequest(req))
	c.JSON(http.StatusOK, recommendResponse(plan, result))
}

// RecommendHybrid personalizes the ranking with the collaborative model when
// a user id is supplied.
func (h *RecommendHandler) RecommendHybrid(c *gin.Context) {
	req, plan, ok := h.bindAndPlan(c)
	if !ok {
		return
	}

	target := mealTargetFor(plan, req.Meal)
	result := h.hybrid.Recommend(req.UserID, target, optsFromRequest(req))
	c.JSON(http.StatusOK, recommendResponse(plan, result))
}

// RecommendDay returns a ranked list for every meal slot of the day.
func (h *RecommendHandler) RecommendDay(c *gin.Context) {
	req, plan, ok := h.bindAndPlan(c)
	if !ok {
		return
	}

	results := h.hybrid.RecommendDay(req.UserID, plan, optsFromRequest(req))
	c.JSON(http.StatusOK, gin.H{
		"nutrition_target": plan,
		"meals":            results,
	})
}

func (h *RecommendHandler) bindAndPlan(c *gin.Context) (types.RecommendRequest, *types.NutritionTarget, bool) {
	var req types.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return req, nil, false
	}

	plan, err := h.dietService.GeneratePlan(req.Profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return req, nil, false
		}
		h.logger.Error("plan generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate plan"})
		return req, nil, false
	}
	return req, plan, true
}

// mealTargetFor doubles the snack budget: a snack recommended as a meal of
// its own gets twice the per-snack share.
func mealTargetFor(plan *types.NutritionTarget, meal string) types.MealTarget {
	target := plan.TargetFor(meal)
	if meal == "snacks" {
		target = target.Scaled(2)
	}
	return target
}

func optsFromRequest(req types.RecommendRequest) service.RecommendOptions {
	return service.RecommendOptions{
		Course:              service.CourseForMeal(req.Meal),
		Diet:                req.Profile.DietType,
		MaxTimeMins:         req.MaxTimeMins,
		MedicalConditions:   req.Profile.MedicalConditions,
		PreferredCuisines:   req.PreferredCuisines,
		DislikedIngredients: req.DislikedIngredients,
		Allergies:           req.Allergies,
		TopN:                req.TopN,
	}
}

func recommendResponse(plan *types.NutritionTarget, result types.RecommendResult) gin.H {
	return gin.H{
		"nutrition_target": plan,
		"recommendations":  result.Recommendations,
		"empty_reason":     result.EmptyReason,
		"relaxed_cuisines": result.RelaxedCuisines,
		"relaxed_dislikes": result.RelaxedDislikes,
	}
}
