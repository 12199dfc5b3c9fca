package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealcraft/wellness-backend/internal/types"
)

// stubPredictor returns a fixed rating for every pair.
type stubPredictor struct {
	rating float64
}

func (s stubPredictor) Predict(userID, recipeID int) float64 { return s.rating }

func newTestHybrid(t *testing.T, p RatingPredictor) *HybridRecommender {
	t.Helper()
	return NewHybridRecommender(newTestRecommender(t), p, nil)
}

func TestHybridScoreBlend(t *testing.T) {
	hybrid := newTestHybrid(t, stubPredictor{rating: 5})
	userID := 1

	res := hybrid.Recommend(&userID, breakfastTarget(), RecommendOptions{
		Course: "Breakfast", Diet: "Vegetarian", MaxTimeMins: 45,
	})
	require.NotEmpty(t, res.Recommendations)

	for _, rec := range res.Recommendations {
		// rating 5 normalizes to (5-1)/4*100 = 100.
		assert.Equal(t, 100.0, rec.Tier3Score)
		assert.InDelta(t, rec.MatchScore*0.7+rec.Tier3Score*0.3, rec.HybridScore, 1e-9)
	}
}

func TestHybridNeutralWithoutUser(t *testing.T) {
	hybrid := newTestHybrid(t, stubPredictor{rating: 5})

	res := hybrid.Recommend(nil, breakfastTarget(), RecommendOptions{
		Course: "Breakfast", Diet: "Vegetarian", MaxTimeMins: 45,
	})
	require.NotEmpty(t, res.Recommendations)
	for _, rec := range res.Recommendations {
		assert.Equal(t, neutralTasteScore, rec.Tier3Score)
	}
}

func TestHybridDegradesWithoutModel(t *testing.T) {
	hybrid := newTestHybrid(t, nil)
	userID := 1

	res := hybrid.Recommend(&userID, breakfastTarget(), RecommendOptions{
		Course: "Breakfast", Diet: "Vegetarian", MaxTimeMins: 45,
	})
	require.NotEmpty(t, res.Recommendations)
	for _, rec := range res.Recommendations {
		assert.Equal(t, neutralTasteScore, rec.Tier3Score)
		assert.InDelta(t, rec.MatchScore*0.7+15.0, rec.HybridScore, 1e-9)
	}
}

func TestHybridSortsByBlendedScore(t *testing.T) {
	// A low flat rating demotes everything equally, so ordering still
	// follows match score; assert the ranking invariant holds regardless.
	hybrid := newTestHybrid(t, stubPredictor{rating: 1})
	userID := 7

	res := hybrid.Recommend(&userID, breakfastTarget(), RecommendOptions{
		Course: "Breakfast", Diet: "Vegetarian", MaxTimeMins: 45,
	})
	require.NotEmpty(t, res.Recommendations)
	for i := 1; i < len(res.Recommendations); i++ {
		assert.GreaterOrEqual(t,
			res.Recommendations[i-1].HybridScore,
			res.Recommendations[i].HybridScore)
	}
}

func TestHybridPropagatesEmptyReason(t *testing.T) {
	hybrid := newTestHybrid(t, stubPredictor{rating: 4})
	userID := 1

	res := hybrid.Recommend(&userID, breakfastTarget(), RecommendOptions{
		Course:            "Breakfast",
		Diet:              "Vegetarian",
		MaxTimeMins:       45,
		MedicalConditions: []string{"celiac_disease"},
	})
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, types.EmptyReasonMedical, res.EmptyReason)
}

func TestHybridTopNTruncation(t *testing.T) {
	hybrid := newTestHybrid(t, stubPredictor{rating: 3})
	userID := 1

	res := hybrid.Recommend(&userID, breakfastTarget(), RecommendOptions{
		Course: "Breakfast", Diet: "Vegetarian", MaxTimeMins: 45, TopN: 2,
	})
	assert.LessOrEqual(t, len(res.Recommendations), 2)
}

func TestExplainBands(t *testing.T) {
	hybrid := newTestHybrid(t, stubPredictor{rating: 5})

	rec := types.Recommendation{
		Recipe:            types.Recipe{Name: "Vegetable Oats Bowl"},
		MatchScore:        85,
		Tier3Score:        90,
		HybridScore:       86.5,
		ProteinGap:        6,
		ProteinSuggestion: "Add 50g paneer (+9g protein) or 1 cup Greek yogurt (+15g)",
	}
	text := hybrid.Explain(rec)
	assert.Contains(t, text, "Vegetable Oats Bowl")
	assert.Contains(t, text, "Excellent nutrition match")
	assert.Contains(t, text, "Predicted you'll love it")
	assert.Contains(t, text, "Protein gap: 6.0g")

	// Without a model the taste line is omitted.
	contentOnly := newTestHybrid(t, nil)
	text = contentOnly.Explain(rec)
	assert.False(t, strings.Contains(text, "Predicted"))
}

func TestRecommendDayCoversAllMeals(t *testing.T) {
	hybrid := newTestHybrid(t, stubPredictor{rating: 4})

	svc := NewDietService()
	plan, err := svc.GeneratePlan(types.UserProfile{
		Age: 30, Gender: "M", WeightKg: 75, HeightCm: 178,
		ActivityLevel: "moderately_active", Goal: "maintenance", DietType: "Vegetarian",
	})
	require.NoError(t, err)

	userID := 1
	results := hybrid.RecommendDay(&userID, plan, RecommendOptions{Diet: "Vegetarian", MaxTimeMins: 45})

	require.Len(t, results, 4)
	for _, meal := range []string{"breakfast", "lunch", "dinner", "snacks"} {
		_, ok := results[meal]
		assert.True(t, ok, meal)
	}
}
