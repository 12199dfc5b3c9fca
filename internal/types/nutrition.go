package types

// UserProfile is the validated per-request input to the nutrition planner.
// Medical conditions and diet type are optional; diet type defaults to
// Vegetarian when empty.
type UserProfile struct {
	Age               int      `json:"age" binding:"required,gt=0"`
	Gender            string   `json:"gender" binding:"required,oneof=M F"`
	WeightKg          float64  `json:"weight_kg" binding:"required,gt=0"`
	HeightCm          float64  `json:"height_cm" binding:"required,gt=0"`
	ActivityLevel     string   `json:"activity_level" binding:"required"`
	Goal              string   `json:"goal" binding:"required,oneof=weight_loss muscle_gain maintenance"`
	MedicalConditions []string `json:"medical_conditions"`
	DietType          string   `json:"diet_type"`
}

// DailyMacros holds the daily macro targets in grams together with the
// percentage split they were derived from. The percentages always sum to 1.0;
// carbs is the adjustment variable.
type DailyMacros struct {
	ProteinG   int     `json:"protein_g"`
	CarbsG     int     `json:"carbs_g"`
	FatG       int     `json:"fat_g"`
	ProteinPct float64 `json:"protein_pct"`
	CarbsPct   float64 `json:"carbs_pct"`
	FatPct     float64 `json:"fat_pct"`
}

// MealTarget is the calorie and macro budget for a single meal. Values are
// the daily targets scaled by the meal share and rounded independently, so
// the four meals need not sum back exactly to the daily totals.
type MealTarget struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Scaled returns a copy of the target with every value multiplied by f.
// Callers double the snack target when recommending a snack as a full meal.
func (m MealTarget) Scaled(f float64) MealTarget {
	return MealTarget{
		Calories: m.Calories * f,
		ProteinG: m.ProteinG * f,
		CarbsG:   m.CarbsG * f,
		FatG:     m.FatG * f,
	}
}

// MealBreakdown splits the daily targets across the four meal slots.
type MealBreakdown struct {
	Breakfast MealTarget `json:"breakfast"`
	Lunch     MealTarget `json:"lunch"`
	Dinner    MealTarget `json:"dinner"`
	Snacks    MealTarget `json:"snacks"`
}

// NutritionTarget is the full output of the nutrition planner for one
// profile. It is derived per request and never persisted.
type NutritionTarget struct {
	BMR            float64       `json:"bmr"`
	TDEE           float64       `json:"tdee"`
	TargetCalories int           `json:"target_calories"`
	DailyMacros    DailyMacros   `json:"daily_macros"`
	MealBreakdown  MealBreakdown `json:"meal_breakdown"`
	Goal           string        `json:"goal"`
}

// TargetFor returns the meal target for the named slot (breakfast, lunch,
// dinner or snacks). Unknown names fall back to the lunch target.
func (n *NutritionTarget) TargetFor(meal string) MealTarget {
	switch meal {
	case "breakfast":
		return n.MealBreakdown.Breakfast
	case "lunch":
		return n.MealBreakdown.Lunch
	case "dinner":
		return n.MealBreakdown.Dinner
	case "snacks", "snack":
		return n.MealBreakdown.Snacks
	}
	return n.MealBreakdown.Lunch
}
