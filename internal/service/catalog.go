package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mealcraft/wellness-backend/internal/types"
)

// Keywords identifying catalog rows that are condiments or mixes rather than
// meals; such rows are removed once at load time.
var nonFoodKeywords = []string{
	"masala", "spice mix", "paste", "chutney", "pickle",
	"powder", "seasoning", "sauce mix", "curry powder",
}

// dietMapping maps normalized user-facing diet names to the diet labels the
// dataset actually uses (including its misspellings). Unmapped names fall
// back to substring matching.
var dietMapping = map[string][]string{
	"vegetarian":         {"Vegetarian", "High Protein Vegetarian"},
	"non-vegetarian":     {"Non Vegeterian", "High Protein Non Vegetarian"},
	"non vegetarian":     {"Non Vegeterian", "High Protein Non Vegetarian"},
	"vegan":              {"Vegan"},
	"eggetarian":         {"Eggetarian"},
	"diabetic":           {"Diabetic Friendly"},
	"diabetic friendly":  {"Diabetic Friendly"},
	"gluten free":        {"Gluten Free"},
	"sugar free":         {"Sugar Free Diet"},
	"no onion no garlic": {"No Onion No Garlic (Sattvic)"},
}

// RecipeCatalog is the read-only recipe store shared by every request. It is
// built once at startup and never mutated afterwards.
type RecipeCatalog struct {
	recipes []types.Recipe
}

// NewRecipeCatalog builds a catalog from raw rows, dropping non-food items.
func NewRecipeCatalog(recipes []types.Recipe, logger *zap.Logger) *RecipeCatalog {
	kept := make([]types.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if isNonFood(r.Name) {
			continue
		}
		kept = append(kept, r)
	}
	if logger != nil {
		logger.Info("recipe catalog loaded",
			zap.Int("total", len(recipes)),
			zap.Int("kept", len(kept)),
			zap.Int("non_food_removed", len(recipes)-len(kept)))
	}
	return &RecipeCatalog{recipes: kept}
}

// Recipes returns the catalog rows. Callers must not mutate the slice.
func (c *RecipeCatalog) Recipes() []types.Recipe {
	return c.recipes
}

// Len reports the number of recipes in the catalog.
func (c *RecipeCatalog) Len() int {
	return len(c.recipes)
}

func isNonFood(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range nonFoodKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// dietLabels resolves a user diet name to the dataset labels it should
// match. The second return is false when no mapping exists and the caller
// should fall back to substring matching.
func dietLabels(diet string) ([]string, bool) {
	key := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(diet), "-", " "))
	labels, ok := dietMapping[key]
	return labels, ok
}

// LoadCatalogCSV reads the cleaned recipe-nutrients file. Columns are
// resolved by header name; rows with unparsable nutrient values are skipped.
func LoadCatalogCSV(path string) ([]types.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Srno", "RecipeName", "Ingredients"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var recipes []types.Recipe
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		id, err := strconv.Atoi(field(row, "Srno"))
		if err != nil {
			continue
		}
		energy, err1 := strconv.ParseFloat(field(row, "energy_per_serving"), 64)
		protein, err2 := strconv.ParseFloat(field(row, "protein_per_serving"), 64)
		carbs, err3 := strconv.ParseFloat(field(row, "carbohydrate_per_serving"), 64)
		fat, err4 := strconv.ParseFloat(field(row, "fat_per_serving"), 64)
		sodium, err5 := strconv.ParseFloat(field(row, "sodium_per_serving"), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			continue
		}
		// Some rows carry fractional minutes; truncation is fine.
		totalTime, _ := strconv.ParseFloat(field(row, "TotalTimeInMins"), 64)

		recipes = append(recipes, types.Recipe{
			ID:           id,
			Name:         field(row, "RecipeName"),
			Cuisine:      field(row, "Cuisine"),
			Diet:         field(row, "Diet"),
			Course:       field(row, "Course"),
			TotalTimeMin: int(totalTime),
			Ingredients:  field(row, "Ingredients"),
			Energy:       energy,
			Protein:      protein,
			Carbs:        carbs,
			Fat:          fat,
			Sodium:       sodium,
		})
	}
	return recipes, nil
}

// LoadRatingsCSV reads a user-recipe rating export with columns
// user_id, recipe_id, rating and an optional timestamp.
func LoadRatingsCSV(path string) ([]types.RatingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read ratings header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"user_id", "recipe_id", "rating"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("ratings missing column %q", required)
		}
	}

	var records []types.RatingRecord
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		userID, err1 := strconv.Atoi(strings.TrimSpace(row[col["user_id"]]))
		recipeID, err2 := strconv.Atoi(strings.TrimSpace(row[col["recipe_id"]]))
		rating, err3 := strconv.ParseFloat(strings.TrimSpace(row[col["rating"]]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		if rating < 1 || rating > 5 {
			continue
		}
		records = append(records, types.RatingRecord{
			UserID:   userID,
			RecipeID: recipeID,
			Rating:   rating,
		})
	}
	return records, nil
}
