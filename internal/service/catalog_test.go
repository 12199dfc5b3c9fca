package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealcraft/wellness-backend/internal/types"
)

func TestCatalogFiltersNonFoodItems(t *testing.T) {
	recipes := []types.Recipe{
		{ID: 1, Name: "Vegetable Pulao"},
		{ID: 2, Name: "Garam Masala Blend"},
		{ID: 3, Name: "Tomato Chutney"},
		{ID: 4, Name: "Sambar Powder Mix"},
		{ID: 5, Name: "Dal Tadka"},
	}
	catalog := NewRecipeCatalog(recipes, nil)

	assert.Equal(t, 2, catalog.Len())
	names := []string{catalog.Recipes()[0].Name, catalog.Recipes()[1].Name}
	assert.ElementsMatch(t, []string{"Vegetable Pulao", "Dal Tadka"}, names)
}

func TestDietLabels(t *testing.T) {
	labels, ok := dietLabels("Non-Vegetarian")
	require.True(t, ok)
	assert.Contains(t, labels, "Non Vegeterian") // dataset misspelling
	assert.Contains(t, labels, "High Protein Non Vegetarian")

	labels, ok = dietLabels("vegan")
	require.True(t, ok)
	assert.Equal(t, []string{"Vegan"}, labels)

	_, ok = dietLabels("pescatarian")
	assert.False(t, ok)
}

func TestLoadCatalogCSV(t *testing.T) {
	csv := `Srno,RecipeName,Cuisine,Course,Diet,TotalTimeInMins,Ingredients,energy_per_serving,protein_per_serving,carbohydrate_per_serving,fat_per_serving,sodium_per_serving
1,Masoor Dal,Indian,Lunch,Vegetarian,30,masoor dal salt turmeric,250,14,30,6,320
2,Broken Row,Indian,Lunch,Vegetarian,30,rice,not-a-number,10,20,5,100
3,Oats Porridge,Continental,Breakfast,Vegetarian,15.5,oats milk,180,8,25,4,90
`
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	recipes, err := LoadCatalogCSV(path)
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	assert.Equal(t, 1, recipes[0].ID)
	assert.Equal(t, "Masoor Dal", recipes[0].Name)
	assert.Equal(t, 250.0, recipes[0].Energy)
	assert.Equal(t, 320.0, recipes[0].Sodium)
	assert.Equal(t, 15, recipes[1].TotalTimeMin) // fractional minutes truncate
}

func TestLoadCatalogCSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("RecipeName,Cuisine\nX,Y\n"), 0o644))

	_, err := LoadCatalogCSV(path)
	assert.Error(t, err)
}

func TestLoadRatingsCSV(t *testing.T) {
	csv := `user_id,recipe_id,rating,timestamp
1,10,4,2024-01-01
1,11,5,2024-01-02
2,10,7,2024-01-03
bad,10,3,2024-01-04
`
	path := filepath.Join(t.TempDir(), "ratings.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	records, err := LoadRatingsCSV(path)
	require.NoError(t, err)
	// Out-of-scale and unparsable rows are skipped.
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].UserID)
	assert.Equal(t, 10, records[0].RecipeID)
	assert.Equal(t, 4.0, records[0].Rating)
}

func TestKnownConditions(t *testing.T) {
	conditions := KnownConditions()
	assert.Contains(t, conditions, "diabetes")
	assert.Contains(t, conditions, "hypertension")
	assert.Contains(t, conditions, "celiac_disease")
	assert.IsIncreasing(t, conditions)
}

func TestConstraintTableCeilings(t *testing.T) {
	c, ok := ConstraintFor("hypertension")
	require.True(t, ok)
	assert.Equal(t, 600.0, c.MaxSodiumMg)

	c, ok = ConstraintFor("celiac_disease")
	require.True(t, ok)
	assert.Equal(t, "Gluten Free", c.RequiredDiet)

	_, ok = ConstraintFor("unknown_condition")
	assert.False(t, ok)
}
