package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mealcraft/wellness-backend/internal/types"
)

// ErrInvalidProfile is returned when a user profile is missing required
// fields or carries out-of-range values.
var ErrInvalidProfile = errors.New("invalid user profile")

// Activity multipliers applied to BMR. Unknown levels fall back to sedentary.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extra_active":      1.9,
}

// Fixed share of the daily targets assigned to each meal slot.
const (
	breakfastShare = 0.25
	lunchShare     = 0.35
	dinnerShare    = 0.30
	snackShare     = 0.10
)

// Calorie floors applied after the goal adjustment.
const (
	minCaloriesFemale = 1200
	minCaloriesMale   = 1500
)

// DietService computes calorie and macro targets from a user profile using
// the Mifflin-St Jeor equation and fixed, clinically derived tables. All
// methods are pure arithmetic over the profile.
type DietService struct{}

// NewDietService creates a new DietService instance.
func NewDietService() *DietService {
	return &DietService{}
}

// CalculateBMR estimates basal metabolic rate via Mifflin-St Jeor,
// rounded to two decimals.
func (s *DietService) CalculateBMR(age int, gender string, weightKg, heightCm float64) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(gender, "M") {
		bmr += 5
	} else {
		bmr -= 161
	}
	return round2(bmr)
}

// CalculateTDEE scales BMR by the activity multiplier, rounded to two
// decimals. Unknown activity levels are treated as sedentary.
func (s *DietService) CalculateTDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = 1.2
	}
	return round2(bmr * mult)
}

// CalculateMacros derives the daily macro split for the target calories.
// The base percentages depend on goal and whether the diet is plant-based;
// medical conditions shift them additively. Carbs absorbs any drift so
// the three percentages always sum to 1.0.
func (s *DietService) CalculateMacros(targetCalories int, goal string, conditions []string, dietType string) types.DailyMacros {
	plantBased := dietType == "Vegetarian" || dietType == "Vegan"

	var proteinPct, carbsPct, fatPct float64
	switch goal {
	case "weight_loss":
		if plantBased {
			proteinPct, carbsPct, fatPct = 0.20, 0.50, 0.30
		} else {
			proteinPct, carbsPct, fatPct = 0.30, 0.40, 0.30
		}
	case "muscle_gain":
		if plantBased {
			proteinPct, carbsPct, fatPct = 0.25, 0.50, 0.25
		} else {
			proteinPct, carbsPct, fatPct = 0.35, 0.45, 0.20
		}
	default: // maintenance
		proteinPct, carbsPct, fatPct = 0.20, 0.50, 0.30
	}

	if hasAnyCondition(conditions, "diabetes", "pre_diabetes") {
		carbsPct -= 0.10
		fatPct += 0.10
	}
	if hasAnyCondition(conditions, "kidney_disease") {
		proteinPct -= 0.10
		carbsPct += 0.10
	}
	if hasAnyCondition(conditions, "heart_disease", "high_cholesterol") {
		fatPct -= 0.05
		carbsPct += 0.05
	}

	if math.Abs(proteinPct+carbsPct+fatPct-1.0) > 0.01 {
		carbsPct = 1.0 - proteinPct - fatPct
	}

	cal := float64(targetCalories)
	return types.DailyMacros{
		ProteinG:   int(math.Round(cal * proteinPct / 4)),
		CarbsG:     int(math.Round(cal * carbsPct / 4)),
		FatG:       int(math.Round(cal * fatPct / 9)),
		ProteinPct: proteinPct,
		CarbsPct:   carbsPct,
		FatPct:     fatPct,
	}
}

// GeneratePlan runs the full target pipeline: BMR, TDEE, goal adjustment
// with gender calorie floors, macro split, and the per-meal breakdown.
func (s *DietService) GeneratePlan(profile types.UserProfile) (*types.NutritionTarget, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	dietType := profile.DietType
	if dietType == "" {
		dietType = "Vegetarian"
	}

	bmr := s.CalculateBMR(profile.Age, profile.Gender, profile.WeightKg, profile.HeightCm)
	tdee := s.CalculateTDEE(bmr, profile.ActivityLevel)

	calories := tdee
	switch profile.Goal {
	case "weight_loss":
		calories = tdee - 500
	case "muscle_gain":
		calories = tdee + 300
	}
	if strings.EqualFold(profile.Gender, "F") {
		calories = math.Max(minCaloriesFemale, calories)
	} else {
		calories = math.Max(minCaloriesMale, calories)
	}
	targetCalories := int(math.Round(calories))

	macros := s.CalculateMacros(targetCalories, profile.Goal, profile.MedicalConditions, dietType)

	return &types.NutritionTarget{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: targetCalories,
		DailyMacros:    macros,
		MealBreakdown: types.MealBreakdown{
			Breakfast: mealTarget(targetCalories, macros, breakfastShare),
			Lunch:     mealTarget(targetCalories, macros, lunchShare),
			Dinner:    mealTarget(targetCalories, macros, dinnerShare),
			Snacks:    mealTarget(targetCalories, macros, snackShare),
		},
		Goal: profile.Goal,
	}, nil
}

// mealTarget scales the daily values by the meal share, rounding each value
// independently. The four meals therefore need not reconcile exactly with
// the daily totals.
func mealTarget(targetCalories int, macros types.DailyMacros, share float64) types.MealTarget {
	return types.MealTarget{
		Calories: math.Round(float64(targetCalories) * share),
		ProteinG: math.Round(float64(macros.ProteinG) * share),
		CarbsG:   math.Round(float64(macros.CarbsG) * share),
		FatG:     math.Round(float64(macros.FatG) * share),
	}
}

func validateProfile(p types.UserProfile) error {
	switch {
	case p.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrInvalidProfile)
	case !strings.EqualFold(p.Gender, "M") && !strings.EqualFold(p.Gender, "F"):
		return fmt.Errorf("%w: gender must be M or F", ErrInvalidProfile)
	case p.WeightKg <= 0:
		return fmt.Errorf("%w: weight_kg must be positive", ErrInvalidProfile)
	case p.HeightCm <= 0:
		return fmt.Errorf("%w: height_cm must be positive", ErrInvalidProfile)
	case p.ActivityLevel == "":
		return fmt.Errorf("%w: activity_level is required", ErrInvalidProfile)
	case p.Goal != "weight_loss" && p.Goal != "muscle_gain" && p.Goal != "maintenance":
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidProfile, p.Goal)
	}
	return nil
}

func hasAnyCondition(conditions []string, names ...string) bool {
	for _, c := range conditions {
		for _, n := range names {
			if c == n {
				return true
			}
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
