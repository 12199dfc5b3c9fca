package models

import (
	"github.com/mealcraft/wellness-backend/internal/types"
)

// Recipe is the persisted catalog row, seeded once from the cleaned
// nutrients CSV and read-only afterwards.
type Recipe struct {
	ID           int     `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:255;not null;index" json:"name"`
	Cuisine      string  `gorm:"size:100;index" json:"cuisine"`
	Diet         string  `gorm:"size:100;index" json:"diet"`
	Course       string  `gorm:"size:100;index" json:"course"`
	TotalTimeMin int     `json:"total_time_mins"`
	Ingredients  string  `gorm:"type:text" json:"ingredients"`
	Energy       float64 `json:"energy_per_serving"`
	Protein      float64 `json:"protein_per_serving"`
	Carbs        float64 `json:"carbohydrate_per_serving"`
	Fat          float64 `json:"fat_per_serving"`
	Sodium       float64 `json:"sodium_per_serving"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// ToCatalogRecipe converts a stored row to the in-memory catalog type.
func (r Recipe) ToCatalogRecipe() types.Recipe {
	return types.Recipe{
		ID:           r.ID,
		Name:         r.Name,
		Cuisine:      r.Cuisine,
		Diet:         r.Diet,
		Course:       r.Course,
		TotalTimeMin: r.TotalTimeMin,
		Ingredients:  r.Ingredients,
		Energy:       r.Energy,
		Protein:      r.Protein,
		Carbs:        r.Carbs,
		Fat:          r.Fat,
		Sodium:       r.Sodium,
	}
}

// FromCatalogRecipe builds the persisted form of a catalog row.
func FromCatalogRecipe(r types.Recipe) Recipe {
	return Recipe{
		ID:           r.ID,
		Name:         r.Name,
		Cuisine:      r.Cuisine,
		Diet:         r.Diet,
		Course:       r.Course,
		TotalTimeMin: r.TotalTimeMin,
		Ingredients:  r.Ingredients,
		Energy:       r.Energy,
		Protein:      r.Protein,
		Carbs:        r.Carbs,
		Fat:          r.Fat,
		Sodium:       r.Sodium,
	}
}
