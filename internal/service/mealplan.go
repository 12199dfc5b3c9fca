package service

import (
	"sync"

	"github.com/mealcraft/wellness-backend/internal/types"
)

// Meal slot names in serving order.
var mealSlots = []string{"breakfast", "lunch", "dinner", "snacks"}

// RecommendDay runs the hybrid pipeline once per meal slot of a daily plan.
// Each meal's run is independent and reads only immutable shared state, so
// the four pipelines run concurrently and results are collected by meal key.
func (h *HybridRecommender) RecommendDay(userID *int, target *types.NutritionTarget, opts RecommendOptions) map[string]types.RecommendResult {
	results := make(map[string]types.RecommendResult, len(mealSlots))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, meal := range mealSlots {
		wg.Add(1)
		go func(meal string) {
			defer wg.Done()
			mealOpts := opts
			mealOpts.Course = CourseForMeal(meal)
			res := h.Recommend(userID, target.TargetFor(meal), mealOpts)
			mu.Lock()
			results[meal] = res
			mu.Unlock()
		}(meal)
	}
	wg.Wait()
	return results
}

// CourseForMeal maps a meal slot name to the catalog course it draws from.
func CourseForMeal(meal string) string {
	switch meal {
	case "breakfast":
		return "Breakfast"
	case "lunch":
		return "Lunch"
	case "dinner":
		return "Dinner"
	default:
		return "Snack"
	}
}
