package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealcraft/wellness-backend/internal/types"
)

func validProfile() types.UserProfile {
	return types.UserProfile{
		Age:           25,
		Gender:        "F",
		WeightKg:      60,
		HeightCm:      165,
		ActivityLevel: "moderately_active",
		Goal:          "maintenance",
		DietType:      "Vegetarian",
	}
}

func TestCalculateBMR(t *testing.T) {
	svc := NewDietService()

	// 10*90 + 6.25*175 - 5*55 + 5 = 1723.75
	assert.Equal(t, 1723.75, svc.CalculateBMR(55, "M", 90, 175))

	// Female variant subtracts 161 instead of adding 5.
	assert.Equal(t, 1345.25, svc.CalculateBMR(25, "F", 60, 165))
}

func TestCalculateTDEE(t *testing.T) {
	svc := NewDietService()

	tests := []struct {
		level string
		want  float64
	}{
		{"sedentary", 1200},
		{"lightly_active", 1375},
		{"moderately_active", 1550},
		{"very_active", 1725},
		{"extra_active", 1900},
		{"unknown_level", 1200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.CalculateTDEE(1000, tt.level), tt.level)
	}
}

func TestGeneratePlanMaintenanceScenario(t *testing.T) {
	svc := NewDietService()

	plan, err := svc.GeneratePlan(validProfile())
	require.NoError(t, err)

	assert.Equal(t, 1345.25, plan.BMR)
	assert.Equal(t, 2085.14, plan.TDEE)
	assert.Equal(t, 2085, plan.TargetCalories)

	assert.Equal(t, 0.20, plan.DailyMacros.ProteinPct)
	assert.Equal(t, 0.50, plan.DailyMacros.CarbsPct)
	assert.Equal(t, 0.30, plan.DailyMacros.FatPct)

	assert.Equal(t, 104, plan.DailyMacros.ProteinG)
	assert.Equal(t, 261, plan.DailyMacros.CarbsG)
	assert.Equal(t, 70, plan.DailyMacros.FatG)
}

func TestGeneratePlanDiabeticWeightLoss(t *testing.T) {
	svc := NewDietService()

	profile := validProfile()
	profile.Goal = "weight_loss"
	profile.MedicalConditions = []string{"diabetes"}

	plan, err := svc.GeneratePlan(profile)
	require.NoError(t, err)

	// Base vegetarian weight-loss split is 0.20/0.50/0.30; diabetes moves
	// 0.10 from carbs to fat.
	assert.InDelta(t, 0.20, plan.DailyMacros.ProteinPct, 1e-9)
	assert.InDelta(t, 0.40, plan.DailyMacros.CarbsPct, 1e-9)
	assert.InDelta(t, 0.40, plan.DailyMacros.FatPct, 1e-9)
	assert.Equal(t, 1585, plan.TargetCalories)
}

func TestMacroPercentagesAlwaysSumToOne(t *testing.T) {
	svc := NewDietService()

	goals := []string{"weight_loss", "muscle_gain", "maintenance"}
	diets := []string{"Vegetarian", "Vegan", "Non-vegetarian", "Eggetarian"}
	conditionSets := [][]string{
		nil,
		{"diabetes"},
		{"kidney_disease"},
		{"heart_disease"},
		{"diabetes", "kidney_disease"},
		{"diabetes", "heart_disease", "kidney_disease"},
	}

	for _, goal := range goals {
		for _, diet := range diets {
			for _, conditions := range conditionSets {
				m := svc.CalculateMacros(2000, goal, conditions, diet)
				sum := m.ProteinPct + m.CarbsPct + m.FatPct
				assert.InDelta(t, 1.0, sum, 1e-9,
					"goal=%s diet=%s conditions=%v", goal, diet, conditions)
			}
		}
	}
}

func TestCalorieFloors(t *testing.T) {
	svc := NewDietService()

	small := types.UserProfile{
		Age: 78, Gender: "F", WeightKg: 40, HeightCm: 145,
		ActivityLevel: "sedentary", Goal: "weight_loss",
	}
	plan, err := svc.GeneratePlan(small)
	require.NoError(t, err)
	assert.Equal(t, 1200, plan.TargetCalories)

	small.Gender = "M"
	plan, err = svc.GeneratePlan(small)
	require.NoError(t, err)
	assert.Equal(t, 1500, plan.TargetCalories)
}

func TestMealBreakdownShares(t *testing.T) {
	svc := NewDietService()

	plan, err := svc.GeneratePlan(validProfile())
	require.NoError(t, err)

	// Breakfast is an exact quarter of the daily targets.
	assert.Equal(t, 521.0, plan.MealBreakdown.Breakfast.Calories)
	assert.Equal(t, 26.0, plan.MealBreakdown.Breakfast.ProteinG)
	assert.Equal(t, 65.0, plan.MealBreakdown.Breakfast.CarbsG)
	assert.Equal(t, 18.0, plan.MealBreakdown.Breakfast.FatG)

	assert.Equal(t, 730.0, plan.MealBreakdown.Lunch.Calories)
	assert.InDelta(t, 625.5, plan.MealBreakdown.Dinner.Calories, 1)
	assert.InDelta(t, 208.5, plan.MealBreakdown.Snacks.Calories, 1)

	// Snack targets scale for snack-as-meal requests.
	doubled := plan.MealBreakdown.Snacks.Scaled(2)
	assert.Equal(t, plan.MealBreakdown.Snacks.Calories*2, doubled.Calories)
	assert.Equal(t, plan.MealBreakdown.Snacks.ProteinG*2, doubled.ProteinG)
}

func TestGeneratePlanValidation(t *testing.T) {
	svc := NewDietService()

	tests := []struct {
		name   string
		mutate func(*types.UserProfile)
	}{
		{"zero age", func(p *types.UserProfile) { p.Age = 0 }},
		{"bad gender", func(p *types.UserProfile) { p.Gender = "X" }},
		{"zero weight", func(p *types.UserProfile) { p.WeightKg = 0 }},
		{"zero height", func(p *types.UserProfile) { p.HeightCm = 0 }},
		{"missing activity", func(p *types.UserProfile) { p.ActivityLevel = "" }},
		{"unknown goal", func(p *types.UserProfile) { p.Goal = "bulk" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := validProfile()
			tt.mutate(&profile)
			_, err := svc.GeneratePlan(profile)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestDietTypeDefaultsToVegetarian(t *testing.T) {
	svc := NewDietService()

	profile := validProfile()
	profile.Goal = "weight_loss"
	profile.DietType = ""
	plan, err := svc.GeneratePlan(profile)
	require.NoError(t, err)

	// Vegetarian weight-loss split, not the non-vegetarian 0.30 protein.
	assert.Equal(t, 0.20, plan.DailyMacros.ProteinPct)
}
